package controller

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/cfddns/cfddns/common/ddns/cloudflare"
	"github.com/cfddns/cfddns/common/doh"
	"github.com/cfddns/cfddns/common/notify"
	"github.com/cfddns/cfddns/common/notify/telegram"
	"github.com/cfddns/cfddns/common/pubip"
	"github.com/cfddns/cfddns/config"
)

func New(c *config.Config) *Service {
	c.SetDefaults()

	s := &Service{
		cron:          cron.New(),
		checkInterval: c.CheckInterval,
		maxRetries:    c.MaxRetries,
		retryDelay:    time.Second * time.Duration(c.RetryDelay),
		recordName:    c.Cloudflare.RecordName,
		resolver:      pubip.New(),
		sleep:         time.Sleep,
	}

	// init log level
	if l, err := log.ParseLevel(c.LogLevel); err != nil {
		log.Panic(err)
	} else {
		log.SetLevel(l)
		fmt.Printf("Log level: %s\n", c.LogLevel)
	}

	// init ddns client
	ddnsCli, err := cloudflare.New(c.Cloudflare.APIToken, c.Cloudflare.ZoneID, c.Cloudflare.RecordName)
	if err != nil {
		log.Panic(err)
	}
	s.ddnsClient = ddnsCli

	// init notifier, optional
	s.notifier = buildNotifier(c)

	// init DoH propagation check, optional
	if c.DoH != nil && c.DoH.Nameserver != "" {
		s.dohClient = doh.New(c.DoH.Nameserver)
	}

	return s
}

func buildNotifier(c *config.Config) notify.Notify {
	if c.Notify == nil || c.Notify.TelegramToken == "" {
		return nil
	}

	chatIDs, err := c.ChatIDs()
	if err != nil {
		log.Panic(err)
	}
	if len(chatIDs) == 0 {
		return nil
	}

	notifier, err := telegram.New(c.Notify.TelegramToken, chatIDs)
	if err != nil {
		// notifications are best-effort, a broken bot must not stop the agent
		log.Errorf("init telegram notifier: %v", err)
		return nil
	}
	return notifier
}
