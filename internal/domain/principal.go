package domain

// Principal identifies the caller on whose behalf the Gateway acts. The
// identity is asserted by the client and forwarded as is.
type Principal struct {
	Username string
}
