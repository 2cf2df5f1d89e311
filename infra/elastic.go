package infra

import (
	"crypto/tls"
	"net"
	"net/http"
	"regexp"
	"time"

	"github.com/HavvokLab/contact-sync/config"
	"github.com/olivere/elastic/v7"
)

var httpsRegexp = regexp.MustCompile("^https")

func NewElasticClient(conf config.ElasticsearchConfig) (*elastic.Client, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig:    &tls.Config{InsecureSkipVerify: true},
			MaxIdleConns:       10,
			IdleConnTimeout:    30 * time.Second,
			DisableCompression: true,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	scheme := "http"
	if httpsRegexp.FindString(conf.Host) != "" {
		scheme = "https"
	}

	options := []elastic.ClientOptionFunc{
		elastic.SetURL(conf.Host),
		elastic.SetScheme(scheme),
		elastic.SetSniff(false),
		elastic.SetHttpClient(httpClient),
		elastic.SetHealthcheckTimeout(time.Duration(300) * time.Second),
	}
	if conf.Username != "" {
		options = append(options, elastic.SetBasicAuth(conf.Username, conf.Password))
	}

	return elastic.NewClient(options...)
}
