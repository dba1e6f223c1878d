package notifier

// Mailer delivers account credentials to personnel. Implementations never
// return an error: delivery problems are logged and reported as false so a
// failed email can never abort the record mutation it accompanies.
type Mailer interface {
	SendCredentials(email, firstName, lastName, username, password, role string) bool
}

// Nop is a Mailer that drops every message, used by the seeder and in tests.
type Nop struct{}

func (Nop) SendCredentials(email, firstName, lastName, username, password, role string) bool {
	return true
}
