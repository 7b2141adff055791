package ddns

// Record is the provider-side state of the managed A record.
type Record struct {
	ID      string
	Content string
	Proxied bool
}

type Client interface {
	// GetRecord fetches the managed record by name. The provider is expected
	// to hold at most one canonical A record for it.
	GetRecord() (*Record, error)

	// UpdateRecord replaces the record content. The proxy flag is written
	// exactly as given.
	UpdateRecord(recordID string, ipAddr string, proxied bool) error
}
