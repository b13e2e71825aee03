package document

// keyspace names every key the backend writes under one prefix.
type keyspace struct {
	prefix string
}

func (k keyspace) user(id string) string {
	return k.prefix + ":user:" + id
}

func (k keyspace) users() string {
	return k.prefix + ":users"
}

func (k keyspace) byName(name string) string {
	return k.prefix + ":users:name:" + name
}

func (k keyspace) byEmail(email string) string {
	return k.prefix + ":users:email:" + email
}
