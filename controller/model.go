package controller

import (
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cfddns/cfddns/common/ddns"
	"github.com/cfddns/cfddns/common/doh"
	"github.com/cfddns/cfddns/common/notify"
)

type ipResolver interface {
	Resolve() (string, error)
}

type Service struct {
	cron        *cron.Cron
	running     bool
	tickRunning atomic.Bool

	checkInterval int
	maxRetries    int
	retryDelay    time.Duration
	recordName    string

	// lastIP is the address of the last successful reconciliation. It only
	// short-circuits redundant provider lookups; the provider stays the
	// source of truth whenever the observed IP changes.
	lastIP string

	resolver   ipResolver
	ddnsClient ddns.Client
	notifier   notify.Notify
	dohClient  *doh.Client

	sleep func(time.Duration)
}
