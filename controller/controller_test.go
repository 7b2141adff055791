package controller

import (
	"errors"
	"testing"
	"time"

	"github.com/cfddns/cfddns/common/ddns"
)

type fakeResolver struct {
	ip    string
	err   error
	calls int
}

func (f *fakeResolver) Resolve() (string, error) {
	f.calls++
	return f.ip, f.err
}

type fakeDNS struct {
	rec         ddns.Record
	getErr      error
	updateErr   error
	getCalls    int
	updateCalls int
	lastID      string
	lastIP      string
	lastProxied bool
}

func (f *fakeDNS) GetRecord() (*ddns.Record, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec := f.rec
	return &rec, nil
}

func (f *fakeDNS) UpdateRecord(recordID string, ipAddr string, proxied bool) error {
	f.updateCalls++
	f.lastID, f.lastIP, f.lastProxied = recordID, ipAddr, proxied
	if f.updateErr != nil {
		return f.updateErr
	}
	f.rec.Content = ipAddr
	f.rec.Proxied = proxied
	return nil
}

type fakeNotify struct {
	messages []string
}

func (f *fakeNotify) Webhook(title string, content string) error {
	f.messages = append(f.messages, content)
	return nil
}

func newTestService(resolver *fakeResolver, dns *fakeDNS) (*Service, *[]time.Duration) {
	var sleeps []time.Duration
	s := &Service{
		checkInterval: 30,
		maxRetries:    5,
		retryDelay:    time.Second * 5,
		recordName:    "home.example.com",
		resolver:      resolver,
		ddnsClient:    dns,
		sleep:         func(d time.Duration) { sleeps = append(sleeps, d) },
	}
	return s, &sleeps
}

func TestTaskUpdatesRecord(t *testing.T) {
	resolver := &fakeResolver{ip: "203.0.113.5"}
	dns := &fakeDNS{rec: ddns.Record{ID: "abc", Content: "203.0.113.4", Proxied: true}}
	s, _ := newTestService(resolver, dns)
	notifier := &fakeNotify{}
	s.notifier = notifier

	s.task()

	if dns.updateCalls != 1 {
		t.Fatalf("got %d updates, want 1", dns.updateCalls)
	}
	if dns.lastID != "abc" || dns.lastIP != "203.0.113.5" || dns.lastProxied {
		t.Errorf("update call: id=%s ip=%s proxied=%t", dns.lastID, dns.lastIP, dns.lastProxied)
	}
	if len(notifier.messages) != 1 {
		t.Errorf("got %d notifications, want 1", len(notifier.messages))
	}
	if s.lastIP != "203.0.113.5" {
		t.Errorf("lastIP: got %s", s.lastIP)
	}
}

func TestTaskAlreadyInSync(t *testing.T) {
	resolver := &fakeResolver{ip: "198.51.100.9"}
	dns := &fakeDNS{rec: ddns.Record{ID: "abc", Content: "198.51.100.9", Proxied: false}}
	s, _ := newTestService(resolver, dns)

	s.task()

	if dns.updateCalls != 0 {
		t.Errorf("in-sync record must not be written, got %d updates", dns.updateCalls)
	}
	if dns.getCalls != 1 {
		t.Errorf("got %d fetches, want 1", dns.getCalls)
	}
	if s.lastIP != "198.51.100.9" {
		t.Errorf("lastIP: got %s", s.lastIP)
	}

	// second tick with the same observed IP short-circuits locally
	s.task()

	if dns.getCalls != 1 || dns.updateCalls != 0 {
		t.Errorf("unchanged IP must skip provider calls entirely, fetches=%d updates=%d",
			dns.getCalls, dns.updateCalls)
	}
	if resolver.calls != 2 {
		t.Errorf("resolver calls: got %d, want 2", resolver.calls)
	}
}

func TestTaskForcesProxyOff(t *testing.T) {
	resolver := &fakeResolver{ip: "203.0.113.5"}
	dns := &fakeDNS{rec: ddns.Record{ID: "abc", Content: "203.0.113.5", Proxied: true}}
	s, _ := newTestService(resolver, dns)

	s.task()

	if dns.updateCalls != 1 {
		t.Fatalf("got %d updates, want 1", dns.updateCalls)
	}
	if dns.lastProxied {
		t.Error("proxy flag must be written as false")
	}
	if dns.lastIP != "203.0.113.5" {
		t.Errorf("update content: got %s", dns.lastIP)
	}
}

func TestTaskFetchRetryExhaustion(t *testing.T) {
	resolver := &fakeResolver{ip: "203.0.113.5"}
	dns := &fakeDNS{getErr: errors.New("cloudflare unreachable")}
	s, sleeps := newTestService(resolver, dns)

	s.task()

	if dns.getCalls != 5 {
		t.Errorf("got %d fetch attempts, want 5", dns.getCalls)
	}
	if len(*sleeps) != 4 {
		t.Fatalf("got %d retry sleeps, want 4", len(*sleeps))
	}
	for i := range *sleeps {
		if (*sleeps)[i] != time.Second*5 {
			t.Errorf("sleep %d: got %v", i, (*sleeps)[i])
		}
	}
	if s.lastIP != "" {
		t.Errorf("lastIP must stay unchanged after an abandoned tick, got %s", s.lastIP)
	}
}

func TestTaskUpdateFailureRetries(t *testing.T) {
	resolver := &fakeResolver{ip: "203.0.113.5"}
	dns := &fakeDNS{
		rec:       ddns.Record{ID: "abc", Content: "203.0.113.4", Proxied: false},
		updateErr: errors.New("success=false"),
	}
	s, sleeps := newTestService(resolver, dns)

	s.task()

	if dns.updateCalls != 5 {
		t.Errorf("got %d update attempts, want 5", dns.updateCalls)
	}
	if len(*sleeps) != 4 {
		t.Errorf("got %d retry sleeps, want 4", len(*sleeps))
	}
	if s.lastIP != "" {
		t.Errorf("lastIP must stay unchanged, got %s", s.lastIP)
	}
}

func TestTaskResolveFailureSkipsTick(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("all endpoints down")}
	dns := &fakeDNS{}
	s, _ := newTestService(resolver, dns)

	s.task()

	if dns.getCalls != 0 || dns.updateCalls != 0 {
		t.Error("a failed resolve must not touch the provider")
	}
	if s.lastIP != "" {
		t.Errorf("lastIP: got %s", s.lastIP)
	}
}

type panickyResolver struct{}

func (panickyResolver) Resolve() (string, error) { panic("boom") }

func TestTaskRecoversFromPanic(t *testing.T) {
	dns := &fakeDNS{}
	s, _ := newTestService(&fakeResolver{}, dns)
	s.resolver = panickyResolver{}

	s.task() // must not propagate

	if s.tickRunning.Load() {
		t.Error("tick guard must be released after a panic")
	}
}
