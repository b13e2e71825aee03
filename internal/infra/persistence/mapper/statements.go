package mapper

// UserNamespace maps the user statements.
var UserNamespace = Namespace{
	Name: "user",
	Statements: []Statement{
		{ID: "add", Kind: KindInsert, SQL: `INSERT INTO users(name, email) VALUES (:name, :email) RETURNING id`},
		{ID: "update", Kind: KindUpdate, SQL: `UPDATE users SET name = :name, email = :email WHERE id = :id`},
		{ID: "delete", Kind: KindDelete, SQL: `DELETE FROM users WHERE id = :id`},
		{ID: "findUser", Kind: KindSelect, SQL: `SELECT id, name, email FROM users WHERE id = :id`},
		{ID: "findUserList", Kind: KindSelect, SQL: `SELECT id, name, email FROM users ORDER BY id`},
		{ID: "findByName", Kind: KindSelect, SQL: `SELECT id, name, email FROM users WHERE name = :name ORDER BY id`},
		{ID: "findByEmail", Kind: KindSelect, SQL: `SELECT id, name, email FROM users WHERE email = :email ORDER BY id LIMIT 1`},
	},
}

// AccountNamespace maps the account statements. Balances travel as text to keep
// NUMERIC values exact.
var AccountNamespace = Namespace{
	Name: "account",
	Statements: []Statement{
		{ID: "add", Kind: KindInsert, SQL: `INSERT INTO accounts(balance) VALUES (CAST(:balance AS NUMERIC)) RETURNING id`},
		{ID: "find", Kind: KindSelect, SQL: `SELECT id, CAST(balance AS TEXT) AS balance FROM accounts WHERE id = :id`},
		{ID: "findForUpdate", Kind: KindSelect, SQL: `SELECT id, CAST(balance AS TEXT) AS balance FROM accounts WHERE id = :id FOR UPDATE`},
		{ID: "updateBalance", Kind: KindUpdate, SQL: `UPDATE accounts SET balance = CAST(:balance AS NUMERIC) WHERE id = :id`},
	},
}
