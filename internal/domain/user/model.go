package user

// Principal is the authenticated identity resolved by the account
// provider. It carries everything the API needs for authorization and
// team ownership; credentials never enter this service.
type Principal struct {
	UserID  int64
	Name    string
	Email   string
	House   string
	IsAdmin bool
}
