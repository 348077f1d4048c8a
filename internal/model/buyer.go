package model

// Buyer is the counterparty of a transfer: either an identified,
// registered user or the anonymous end customer. The zero value is the
// anonymous customer, so a forgotten buyer never aliases a real user.
type Buyer struct {
	userID string
}

// IdentifiedBuyer returns a Buyer naming a registered user.
func IdentifiedBuyer(userID string) Buyer {
	return Buyer{userID: userID}
}

// AnonymousCustomer returns the terminal-sale counterparty.
func AnonymousCustomer() Buyer {
	return Buyer{}
}

// Identified returns the buyer's user id and true when the buyer is a
// registered user.
func (b Buyer) Identified() (string, bool) {
	return b.userID, b.userID != ""
}

// Anonymous reports whether this is a terminal sale to an end customer.
func (b Buyer) Anonymous() bool {
	return b.userID == ""
}
