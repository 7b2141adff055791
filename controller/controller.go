package controller

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/cfddns/cfddns/config"
)

func (s *Service) Start() {
	// On init start, do once check
	defer s.task()
	s.running = true

	// cron check
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", s.checkInterval), s.task); err != nil {
		log.Panic(err)
	}

	s.cron.Start()
	log.Warnln(config.AppName, "Started")
}

// task is one reconciliation tick. Nothing inside it may kill the loop: a
// failed tick is logged and retried on the next interval.
func (s *Service) task() {
	if s.tickRunning.Load() {
		return
	}

	s.tickRunning.Store(true)
	defer s.tickRunning.Store(false)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[%s] recovered from tick panic: %v", s.recordName, r)
		}
	}()

	currentIP, err := s.resolver.Resolve()
	if err != nil {
		log.Errorf("[%s] %v", s.recordName, err)
		return
	}

	if currentIP == s.lastIP {
		log.Debugf("[%s] IP %s unchanged, nothing to do", s.recordName, currentIP)
		return
	}

	log.Infof("[%s] detected IP: %s (previous: %s)", s.recordName, currentIP, s.lastIP)
	s.reconcile(currentIP)
}

// reconcile drives the provider towards currentIP within the retry budget.
// lastIP moves only on a confirmed consistent state.
func (s *Service) reconcile(currentIP string) {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.apply(currentIP)
		if err == nil {
			s.lastIP = currentIP
			return
		}

		log.Errorf("[%s] attempt %d/%d failed: %v", s.recordName, attempt, s.maxRetries, err)
		if attempt < s.maxRetries {
			log.Infof("[%s] retrying in %v..", s.recordName, s.retryDelay)
			s.sleep(s.retryDelay)
		} else {
			log.Errorf("[%s] max retries reached, giving up until next cycle", s.recordName)
		}
	}
}

func (s *Service) apply(currentIP string) error {
	rec, err := s.ddnsClient.GetRecord()
	if err != nil {
		return err
	}
	log.Infof("[%s] current record: %s, proxied=%t", s.recordName, rec.Content, rec.Proxied)

	// Repeated ticks against an already-correct record must not write.
	if rec.Content == currentIP && !rec.Proxied {
		log.Infof("[%s] record already in sync, no update needed", s.recordName)
		return nil
	}

	// The proxy flag is always forced off on write.
	if err := s.ddnsClient.UpdateRecord(rec.ID, currentIP, false); err != nil {
		return err
	}
	log.Infof("[%s] record updated to %s", s.recordName, currentIP)

	s.pushMessage(currentIP)
	s.checkPropagation(currentIP)
	return nil
}

// push message
func (s *Service) pushMessage(currentIP string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Webhook(s.recordName, fmt.Sprintf("Public IP updated:\n%s", currentIP)); err != nil {
		log.Error(err)
	}
}

func (s *Service) checkPropagation(currentIP string) {
	if s.dohClient == nil {
		return
	}

	ips := s.dohClient.LookupIP(s.recordName)
	for i := range ips {
		if ips[i] == currentIP {
			log.Debugf("[%s] new IP already visible via DoH", s.recordName)
			return
		}
	}
	log.Debugf("[%s] new IP not visible via DoH yet: %v", s.recordName, ips)
}

func (s *Service) Close() {
	log.Infoln(config.AppName, "Closing..")
	entry := s.cron.Entries()
	for i := range entry {
		s.cron.Remove(entry[i].ID)
	}
	s.cron.Stop()
	s.running = false
}
