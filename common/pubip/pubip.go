package pubip

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// Ordered discovery services, first valid answer wins.
var defaultEndpoints = []string{
	"https://api.ipify.org",
	"https://ifconfig.me/ip",
	"https://checkip.amazonaws.com",
}

type Resolver struct {
	client    *resty.Client
	endpoints []string
}

func New() *Resolver {
	return &Resolver{
		client:    resty.New().SetTimeout(time.Second * 10),
		endpoints: defaultEndpoints,
	}
}

// Resolve queries the discovery services in order and returns the first
// response that passes the public IPv4 filter. A failing or lying endpoint is
// skipped, not retried.
func (r *Resolver) Resolve() (string, error) {
	var lastErr error

	for i := range r.endpoints {
		endpoint := r.endpoints[i]

		resp, err := r.client.R().Get(endpoint)
		if err != nil {
			log.Warnf("[pubip] %s: %v", endpoint, err)
			lastErr = err
			continue
		}
		if resp.StatusCode() != http.StatusOK {
			lastErr = fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode())
			log.Warnf("[pubip] %v", lastErr)
			continue
		}

		ip := strings.TrimSpace(resp.String())
		if !IsPublicIPv4(ip) {
			log.Warnf("[pubip] %s response is not a valid public IP: %q", endpoint, ip)
			continue
		}

		log.Debugf("[pubip] got IP from %s: %s", endpoint, ip)
		return ip, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("cannot get a valid public IP address: %w", lastErr)
	}
	return "", errors.New("cannot get a valid public IP address: all endpoints returned invalid data")
}
