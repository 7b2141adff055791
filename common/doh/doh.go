package doh

import (
	"io"
	"net/http"
	"time"

	"github.com/bitly/go-simplejson"
	log "github.com/sirupsen/logrus"
)

// Client queries a DNS-over-HTTPS nameserver for A answers. The agent uses it
// after a successful write to observe whether the new address is visible yet.
type Client struct {
	nameserver string
}

func New(server string) *Client {
	return &Client{nameserver: server}
}

func (d *Client) LookupIP(name string) []string {
	client := http.Client{
		Timeout: time.Second * 20,
	}

	req, err := http.NewRequest("GET", d.nameserver, nil)
	if err != nil {
		log.Error(err)
		return nil
	}

	req.Header.Add("accept", "application/dns-json")

	q := req.URL.Query()
	q.Add("name", name)
	q.Add("type", "1")
	req.URL.RawQuery = q.Encode()

	res, err := client.Do(req)
	if err != nil {
		log.Error(err)
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	res.Body.Close()

	json, err := simplejson.NewJson(body)
	if err != nil {
		return nil
	}
	ipList := json.Get("Answer").MustArray()
	if len(ipList) == 0 {
		return nil
	}

	var ips []string
	for i := range ipList {
		answer := ipList[i].(map[string]any)
		if v, ok := answer["data"]; ok {
			ips = append(ips, v.(string))
		}
	}
	return ips
}
