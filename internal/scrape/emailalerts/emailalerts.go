// Email alert connector: parses LinkedIn and Seek job alert emails over
// IMAP. Needs alerts configured for email delivery on both sites; unread
// messages from the known alert senders are scanned and the job links
// extracted from the HTML body. Messages are fetched with BODY.PEEK[] and
// marked seen only after successful parsing.
package emailalerts

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"jobradar/internal/scrape/types"
)

// alertSenders are the known From addresses of job alert emails.
var alertSenders = map[string]bool{
	"jobalerts@linkedin.com":    true,
	"jobs-noreply@linkedin.com": true,
	"noreply@seek.com.au":       true,
	"jobs@seek.com.au":          true,
}

const maxMessages = 50

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Mailbox  string
}

type Connector struct {
	cfg Config
}

func New(cfg Config) *Connector {
	if cfg.Port == 0 {
		cfg.Port = 993
	}
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &Connector{cfg: cfg}
}

func (c *Connector) Name() string { return "EmailAlerts" }

func (c *Connector) Fetch(ctx context.Context) (types.Result, error) {
	res := types.Result{Source: c.Name()}

	if c.cfg.Username == "" || c.cfg.Password == "" {
		log.Printf("[emailalerts] IMAP credentials not set, skipping")
		return res, nil
	}

	client, err := c.dial(ctx)
	if err != nil {
		return res, err
	}
	defer func() {
		if err := client.Logout().Wait(); err != nil {
			log.Printf("[emailalerts] imap logout: %v", err)
		}
		_ = client.Close()
	}()

	if _, err := client.Select(c.cfg.Mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return res, fmt.Errorf("imap select %s: %w", c.cfg.Mailbox, err)
	}

	messages, err := fetchUnseen(ctx, client, maxMessages)
	if err != nil {
		return res, err
	}

	var parsedUIDs []imap.UID
	for _, m := range messages {
		if !fromAlertSender(m.From) {
			continue
		}
		jobs := extractJobs(string(m.RawMessage))
		if len(jobs) == 0 {
			continue
		}
		log.Printf("[emailalerts] %q from %s -> %d job links", m.Subject, m.From, len(jobs))
		res.Jobs = append(res.Jobs, jobs...)
		parsedUIDs = append(parsedUIDs, m.UID)
	}

	if err := markSeen(client, parsedUIDs); err != nil {
		log.Printf("[emailalerts] mark seen: %v", err)
	}

	return res, nil
}

func (c *Connector) dial(ctx context.Context) (*imapclient.Client, error) {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	client, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: c.cfg.Host,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = client.Close()
	}()

	if err := client.Login(c.cfg.Username, c.cfg.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return client, nil
}

type message struct {
	UID        imap.UID
	From       string
	Subject    string
	RawMessage []byte
}

// fetchUnseen pulls up to max unseen messages newer than three months,
// newest first, without setting \Seen.
func fetchUnseen(ctx context.Context, client *imapclient.Client, max int) ([]message, error) {
	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   time.Now().AddDate(0, -3, 0),
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search unseen: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	if len(uids) > max {
		uids = uids[:max]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	var out []message
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}

		m := message{UID: buf.UID}
		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			if len(buf.Envelope.From) > 0 {
				m.From = strings.TrimSpace(buf.Envelope.From[0].Addr())
			}
		}
		if b := buf.FindBodySection(bodyAll); b != nil {
			m.RawMessage = append([]byte(nil), b...)
		}
		out = append(out, m)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}
	return out, nil
}

func markSeen(client *imapclient.Client, uids []imap.UID) error {
	if len(uids) == 0 {
		return nil
	}
	cmd := client.Store(imap.UIDSetNum(uids...), &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}, nil)
	return cmd.Close()
}

func fromAlertSender(from string) bool {
	return alertSenders[strings.ToLower(strings.TrimSpace(from))]
}
