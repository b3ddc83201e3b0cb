// Package discovery advertises the timedeck server over mDNS and lets clients
// find it without a configured address.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"

	"github.com/enbility/zeroconf/v3"
)

const (
	// ServiceType is the DNS-SD service type of the gRPC endpoint.
	ServiceType = "_timedeck._tcp"
	// Domain is the mDNS domain.
	Domain = "local"
	// versionKey is the TXT key carrying the server version.
	versionKey = "version"
)

// ErrNoService is returned when browsing ends without a usable answer.
var ErrNoService = errors.New("no timedeck server found")

// Advertiser keeps an mDNS registration alive.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise registers instance on all interfaces for port.
func Advertise(instance string, port int, version string) (*Advertiser, error) {
	server, err := zeroconf.Register(
		instance,
		ServiceType,
		Domain,
		port,
		EncodeTXT(map[string]string{versionKey: version}),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("register mdns service: %w", err)
	}

	return &Advertiser{server: server}, nil
}

// Shutdown withdraws the registration.
func (a *Advertiser) Shutdown() {
	if a == nil || a.server == nil {
		return
	}

	a.server.Shutdown()
}

// Service is a discovered server.
type Service struct {
	Instance  string
	Host      string
	Port      int
	Addresses []string
	Version   string
}

// Address returns a dialable host:port, preferring IPv4.
func (s Service) Address() string {
	host := strings.TrimSuffix(s.Host, ".")
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
	}

	return net.JoinHostPort(host, strconv.Itoa(s.Port))
}

// Find browses until the first server answers or ctx is done.
func Find(ctx context.Context) (Service, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	browseErr := make(chan error, 1)

	go func() {
		browseErr <- zeroconf.Browse(ctx, ServiceType, Domain, entries, removed)
	}()

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return Service{}, ErrNoService
			}

			if svc, ok := fromEntry(entry); ok {
				return svc, nil
			}
		case <-removed:
		case err := <-browseErr:
			if err != nil {
				return Service{}, fmt.Errorf("browse mdns: %w", err)
			}

			return Service{}, ErrNoService
		case <-ctx.Done():
			return Service{}, fmt.Errorf("%w: %w", ErrNoService, ctx.Err())
		}
	}
}

// fromEntry converts an answer; entries without a port or address are skipped.
func fromEntry(entry *zeroconf.ServiceEntry) (Service, bool) {
	if entry == nil || entry.Port == 0 {
		return Service{}, false
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}

	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	if len(addrs) == 0 && entry.HostName == "" {
		return Service{}, false
	}

	return Service{
		Instance:  entry.Instance,
		Host:      entry.HostName,
		Port:      entry.Port,
		Addresses: addrs,
		Version:   DecodeTXT(entry.Text)[versionKey],
	}, true
}

// EncodeTXT renders key=value TXT strings in a stable order.
func EncodeTXT(records map[string]string) []string {
	out := make([]string, 0, len(records))
	for k, v := range records {
		out = append(out, k+"="+v)
	}

	slices.Sort(out)

	return out
}

// DecodeTXT parses key=value TXT strings. Keys without a value map to "".
func DecodeTXT(txt []string) map[string]string {
	out := make(map[string]string, len(txt))

	for _, s := range txt {
		k, v, _ := strings.Cut(s, "=")
		out[k] = v
	}

	return out
}
