// Package client is the ACME protocol engine: signed-request transport,
// directory/session management, and the resource-lifecycle operations
// (Account, Order, Authorization, Challenge, Certificate, RenewalInfo)
// built on top of acme/jose and acme/resources.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/acmecore/acmecore/acme"
	acmenet "github.com/acmecore/acmecore/net"
)

// DefaultDirectoryTTL is the lifetime of a cached directory when the
// response carries no positive Cache-Control max-age. An Expires header is
// not consulted.
const DefaultDirectoryTTL = 1 * time.Hour

// Profile describes one CA-defined certificate profile advertised in the
// directory's meta.profiles map (draft-ietf-acme-profiles).
type Profile struct {
	Name        string
	Description string
}

// AutoRenewalMetadata is the draft auto-renewal sub-feature of directory
// metadata: the CA's advertised bounds on the feature, not a specific
// order's configuration (see resources.AutoRenewal for that).
type AutoRenewalMetadata struct {
	MinLifetime int
	MaxDuration int
	GetAllowed  bool
}

// Metadata is an immutable snapshot of the directory's "meta" object.
type Metadata struct {
	TermsOfServiceURL       string
	WebsiteURL              string
	CAAIdentities           []string
	ExternalAccountRequired bool
	Profiles                []Profile
	AutoRenewal             *AutoRenewalMetadata
}

// SupportsAutoRenewal reports whether the CA advertises the auto-renewal
// extension.
func (m *Metadata) SupportsAutoRenewal() bool { return m != nil && m.AutoRenewal != nil }

// SupportsProfile reports whether the CA advertises the named profile.
func (m *Metadata) SupportsProfile(name string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.Profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Config configures a Session.
type Config struct {
	// DirectoryURL is the ACME server's directory endpoint. Required.
	DirectoryURL string
	// Locale is an RFC 4647 language range (e.g. "en-US") sent as the
	// preferred Accept-Language value. Optional.
	Locale string
	// Net configures the underlying HTTPS transport (timeouts, CA bundle).
	Net acmenet.Config
	// Logger receives structured diagnostics. A no-op logger is used if nil.
	Logger *zap.Logger
}

func (c *Config) normalize() error {
	c.DirectoryURL = strings.TrimSpace(c.DirectoryURL)
	if c.DirectoryURL == "" {
		return fmt.Errorf("client: DirectoryURL must not be empty")
	}
	if _, err := url.Parse(c.DirectoryURL); err != nil {
		return fmt.Errorf("client: DirectoryURL invalid: %w", err)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// Session is the process-wide, shared handle to one ACME server: its
// directory, metadata, nonce pool and network settings. Session is safe
// for concurrent use; all mutable state is guarded by mu, except the nonce
// pool which has its own lock.
type Session struct {
	directoryURL string
	locale       string
	logger       *zap.Logger
	net          *acmenet.ACMENet
	nonces       noncePool

	mu          sync.RWMutex
	directory   map[acme.ResourceKind]string
	metadata    *Metadata
	expiresAt   time.Time
	lastModTime string

	fetchGroup singleflight.Group
}

// New builds a Session from Config. It does not fetch the directory
// eagerly; the first call needing it triggers readDirectory.
func New(conf Config) (*Session, error) {
	if err := conf.normalize(); err != nil {
		return nil, err
	}
	n, err := acmenet.New(conf.Net)
	if err != nil {
		return nil, err
	}
	return &Session{
		directoryURL: conf.DirectoryURL,
		locale:       conf.Locale,
		logger:       conf.Logger,
		net:          n,
	}, nil
}

// acceptLanguage renders the session locale as a q-weighted Accept-Language
// value, falling back to "*;q=0.1".
func (s *Session) acceptLanguage() string {
	if s.locale == "" {
		return "*;q=0.1"
	}
	return s.locale + ", *;q=0.1"
}

// directorySnapshot is the wire shape of the ACME directory resource.
type directorySnapshot struct {
	NewNonce    string `json:"newNonce"`
	NewAccount  string `json:"newAccount"`
	NewOrder    string `json:"newOrder"`
	NewAuthz    string `json:"newAuthz"`
	RevokeCert  string `json:"revokeCert"`
	KeyChange   string `json:"keyChange"`
	RenewalInfo string `json:"renewalInfo"`
	Meta        *struct {
		TermsOfService          string   `json:"termsOfService"`
		Website                 string   `json:"website"`
		CAAIdentities           []string `json:"caaIdentities"`
		ExternalAccountRequired bool     `json:"externalAccountRequired"`
		Profiles                map[string]string `json:"profiles"`
		AutoRenewal             *struct {
			MinLifetime int  `json:"min-lifetime"`
			MaxDuration int  `json:"max-duration"`
			AllowGet    bool `json:"allow-get"`
		} `json:"auto-renewal"`
	} `json:"meta"`
}

// readDirectory fetches and caches the directory, deduplicating concurrent
// callers via singleflight so at most one fetch is ever in flight.
func (s *Session) readDirectory() error {
	_, err, _ := s.fetchGroup.Do("directory", func() (interface{}, error) {
		return nil, s.fetchDirectory()
	})
	return err
}

func (s *Session) fetchDirectory() error {
	headers := http.Header{"Accept-Language": []string{s.acceptLanguage()}}
	resp, err := s.net.Get(s.directoryURL, headers)
	if err != nil {
		return acme.NewProtocolError("fetching directory", err)
	}
	if resp.Response.StatusCode != http.StatusOK {
		return acme.NewProtocolError(
			fmt.Sprintf("directory endpoint returned HTTP %d", resp.Response.StatusCode), nil)
	}

	var snap directorySnapshot
	if err := json.Unmarshal(resp.Body, &snap); err != nil {
		return acme.NewProtocolError("parsing directory JSON", err)
	}

	dir := map[acme.ResourceKind]string{}
	if snap.NewNonce != "" {
		dir[acme.NewNonce] = snap.NewNonce
	}
	if snap.NewAccount != "" {
		dir[acme.NewAccount] = snap.NewAccount
	}
	if snap.NewOrder != "" {
		dir[acme.NewOrder] = snap.NewOrder
	}
	if snap.NewAuthz != "" {
		dir[acme.NewAuthz] = snap.NewAuthz
	}
	if snap.RevokeCert != "" {
		dir[acme.RevokeCert] = snap.RevokeCert
	}
	if snap.KeyChange != "" {
		dir[acme.KeyChange] = snap.KeyChange
	}
	if snap.RenewalInfo != "" {
		dir[acme.RenewalInfo] = snap.RenewalInfo
	}
	for kind, u := range dir {
		if _, err := url.ParseRequestURI(u); err != nil {
			return acme.NewProtocolError(fmt.Sprintf("directory entry %q is not an absolute URL", kind), err)
		}
	}

	var meta *Metadata
	if snap.Meta != nil {
		meta = &Metadata{
			TermsOfServiceURL:       snap.Meta.TermsOfService,
			WebsiteURL:              snap.Meta.Website,
			CAAIdentities:           snap.Meta.CAAIdentities,
			ExternalAccountRequired: snap.Meta.ExternalAccountRequired,
		}
		for name, desc := range snap.Meta.Profiles {
			meta.Profiles = append(meta.Profiles, Profile{Name: name, Description: desc})
		}
		if snap.Meta.AutoRenewal != nil {
			meta.AutoRenewal = &AutoRenewalMetadata{
				MinLifetime: snap.Meta.AutoRenewal.MinLifetime,
				MaxDuration: snap.Meta.AutoRenewal.MaxDuration,
				GetAllowed:  snap.Meta.AutoRenewal.AllowGet,
			}
		}
	}

	ttl := DefaultDirectoryTTL
	if cc := resp.Response.Header.Get("Cache-Control"); cc != "" {
		if d, ok := parseMaxAge(cc); ok && d > 0 {
			ttl = d
		}
	}

	s.mu.Lock()
	s.directory = dir
	s.metadata = meta
	s.expiresAt = time.Now().Add(ttl)
	s.lastModTime = resp.Response.Header.Get("Last-Modified")
	s.mu.Unlock()

	s.logger.Debug("refreshed acme directory", zap.String("url", s.directoryURL), zap.Int("entries", len(dir)))
	return nil
}

func parseMaxAge(cacheControl string) (time.Duration, bool) {
	for _, part := range strings.Split(cacheControl, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "max-age=") {
			continue
		}
		var seconds int
		if _, err := fmt.Sscanf(part, "max-age=%d", &seconds); err == nil {
			return time.Duration(seconds) * time.Second, true
		}
	}
	return 0, false
}

func (s *Session) directoryValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory != nil && time.Now().Before(s.expiresAt)
}

// ensureDirectory fetches the directory if missing or expired.
func (s *Session) ensureDirectory() error {
	if s.directoryValid() {
		return nil
	}
	return s.readDirectory()
}

// ResourceURL resolves a directory entry to its absolute URL, fetching or
// refreshing the directory as needed. It fails with UnsupportedFeatureError
// if the CA's directory does not advertise kind.
func (s *Session) ResourceURL(kind acme.ResourceKind) (string, error) {
	if err := s.ensureDirectory(); err != nil {
		return "", err
	}
	s.mu.RLock()
	u, ok := s.directory[kind]
	s.mu.RUnlock()
	if !ok {
		return "", acme.NewUnsupportedFeatureError(string(kind))
	}
	return u, nil
}

// Metadata returns the cached directory metadata, fetching the directory
// first if necessary. May return nil if the CA's directory carries no meta
// object.
func (s *Session) Metadata() (*Metadata, error) {
	if err := s.ensureDirectory(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata, nil
}
