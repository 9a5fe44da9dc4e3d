package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Loads() LoadRepository
	Bids() BidRepository
	Invoices() InvoiceRepository
	Distances() DistanceCache
}
