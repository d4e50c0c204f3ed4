package domain

// Stats is a point-in-time count of platform entities for the admin
// dashboard. An account with several roles counts once per role.
type Stats struct {
	Farmers  int
	Owners   int
	Workers  int
	Listings int
	Bookings int
}
