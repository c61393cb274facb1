package komfovent

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/netip"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackpal/gateway"
	"golang.org/x/net/html"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultDiscoveryConcurrency = 10
	DefaultProbeTimeout         = 2 * time.Second

	maxProbeBody = 64 << 10
	// hostBitsLimit caps the sweep at a /24.
	hostBitsLimit = 8
)

// DiscoveredDevice is a panel found on the local network.
type DiscoveredDevice struct {
	Host string `json:"host"`
	Name string `json:"name"`
}

// DiscoveryOptions tune a subnet sweep. Zero values pick the defaults.
type DiscoveryOptions struct {
	Subnet      string        `mapstructure:"subnet"`
	Port        int           `mapstructure:"port"`
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Profile     *Profile      `mapstructure:"-"`
}

// Discovery sweeps a subnet for C6 panels.
type Discovery struct {
	opts       DiscoveryOptions
	httpClient *http.Client
	subnetFn   func() (string, bool)
}

// NewDiscovery returns a sweeper. An empty Subnet is detected at Discover time.
func NewDiscovery(opts DiscoveryOptions) *Discovery {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultDiscoveryConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultProbeTimeout
	}
	if opts.Profile == nil {
		opts.Profile = DefaultProfile()
	}
	return &Discovery{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			// a panel answers the root page itself
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
		subnetFn: LocalSubnet,
	}
}

// LocalSubnet returns the /24 of the interface holding the default route,
// e.g. "192.168.0.0/24".
func LocalSubnet() (string, bool) {
	ip, err := gateway.DiscoverInterface()
	if err != nil || ip.To4() == nil {
		ip, err = outboundIP()
		if err != nil {
			return "", false
		}
	}
	return subnet24(ip)
}

// outboundIP asks the kernel which source address it would use; no packet
// is sent for a UDP connect.
func outboundIP() (net.IP, error) {
	conn, err := net.Dial("udp4", "10.255.255.255:1")
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, errors.New("unexpected local address type")
	}
	return addr.IP, nil
}

func subnet24(ip net.IP) (string, bool) {
	addr, ok := netip.AddrFromSlice(ip.To4())
	if !ok || addr.IsUnspecified() {
		return "", false
	}
	p, err := addr.Prefix(24)
	if err != nil {
		return "", false
	}
	return p.String(), true
}

// Discover probes every host of the subnet and returns the panels found,
// sorted by address. Unreachable hosts are skipped; with no usable subnet
// the result is empty.
func (d *Discovery) Discover(ctx context.Context) ([]DiscoveredDevice, error) {
	subnet := d.opts.Subnet
	if subnet == "" {
		var ok bool
		if subnet, ok = d.subnetFn(); !ok {
			return []DiscoveredDevice{}, nil
		}
	}
	hosts := hostsOf(subnet)
	if len(hosts) == 0 {
		return []DiscoveredDevice{}, nil
	}

	var (
		sem   = semaphore.NewWeighted(int64(d.opts.Concurrency))
		wg    sync.WaitGroup
		mu    sync.Mutex
		found = []DiscoveredDevice{}
	)
	for _, host := range hosts {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			defer sem.Release(1)
			if dev, ok := d.checkHost(ctx, host); ok {
				mu.Lock()
				found = append(found, dev)
				mu.Unlock()
			}
		}(host)
	}
	wg.Wait()

	sort.Slice(found, func(i, j int) bool {
		a, _ := netip.ParseAddr(found[i].Host)
		b, _ := netip.ParseAddr(found[j].Host)
		return a.Less(b)
	})
	return found, ctx.Err()
}

// hostsOf lists the host addresses of an IPv4 prefix no wider than /24,
// network and broadcast excluded.
func hostsOf(subnet string) []string {
	p, err := netip.ParsePrefix(strings.TrimSpace(subnet))
	if err != nil || !p.Addr().Is4() || 32-p.Bits() > hostBitsLimit {
		return nil
	}
	p = p.Masked()
	if p.Bits() >= 31 {
		return []string{p.Addr().String()}
	}
	var hosts []string
	for a := p.Addr().Next(); p.Contains(a) && p.Contains(a.Next()); a = a.Next() {
		hosts = append(hosts, a.String())
	}
	return hosts
}

// checkHost reports whether host serves a panel root page.
func (d *Discovery) checkHost(ctx context.Context, host string) (DiscoveredDevice, bool) {
	u := "http://" + net.JoinHostPort(host, strconv.Itoa(d.opts.Port)) + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return DiscoveredDevice{}, false
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return DiscoveredDevice{}, false
	}
	defer resp.Body.Close()

	if strings.TrimSpace(resp.Header.Get("Server")) != d.opts.Profile.Signature {
		return DiscoveredDevice{}, false
	}
	name := pageTitle(io.LimitReader(resp.Body, maxProbeBody))
	if name == "" {
		name = d.opts.Profile.DefaultName
	}
	return DiscoveredDevice{Host: host, Name: name}, true
}

// pageTitle returns the trimmed text of the first <title> element.
func pageTitle(r io.Reader) string {
	z := html.NewTokenizer(r)
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			if inTitle {
				return ""
			}
		}
	}
}
