package cloudflare

import (
	"fmt"
	"time"

	"github.com/cloudflare/cloudflare-go"
	"golang.org/x/net/context"

	"github.com/cfddns/cfddns/common/ddns"
)

// Cloudflare Implementation
type Cloudflare struct {
	client     *cloudflare.API
	zoneID     string
	recordName string
}

func New(apiToken string, zoneID string, recordName string, opts ...cloudflare.Option) (*Cloudflare, error) {
	cf := new(Cloudflare)

	client, err := cloudflare.NewWithAPIToken(apiToken, opts...)
	if err != nil {
		return nil, err
	}
	cf.client = client
	cf.zoneID = zoneID
	cf.recordName = recordName

	return cf, nil
}

func (cf *Cloudflare) GetRecord() (*ddns.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	records, _, err := cf.client.ListDNSRecords(ctx, cloudflare.ZoneIdentifier(cf.zoneID), cloudflare.ListDNSRecordsParams{
		Type: "A",
		Name: cf.recordName,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("[%s] A record not found in zone %s", cf.recordName, cf.zoneID)
	}

	rec := records[0]
	return &ddns.Record{
		ID:      rec.ID,
		Content: rec.Content,
		Proxied: rec.Proxied != nil && *rec.Proxied,
	}, nil
}

func (cf *Cloudflare) UpdateRecord(recordID string, ipAddr string, proxied bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	// TTL 1 means "automatic" on Cloudflare
	_, err := cf.client.UpdateDNSRecord(ctx, cloudflare.ZoneIdentifier(cf.zoneID), cloudflare.UpdateDNSRecordParams{
		ID:      recordID,
		Type:    "A",
		Name:    cf.recordName,
		Content: ipAddr,
		TTL:     1,
		Proxied: &proxied,
	})
	if err != nil {
		return fmt.Errorf("[%s] update record failure, Error: %s", cf.recordName, err)
	}
	return nil
}
