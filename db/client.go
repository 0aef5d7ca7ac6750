package db

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
)

const (
	TableMetadata    = "chemtools-metadata"
	TableRuns        = "runs"
	TableIndexLookup = "index-lookups"

	MetaLastRun = "last-run"
)

var (
	ErrKeyNotFound = errors.New("requested key not found")

	tables = []string{
		TableMetadata,
		TableRuns,
		TableIndexLookup,
	}
)

// Tables returns the names of all managed tables.
func Tables() []string {
	return append([]string{}, tables...)
}

// Client stores the run archive, package index lookup cache and metadata on
// top of a Backend.
type Client struct {
	be Backend
}

func NewClient(config *BoltConfig) *Client {
	c := &Client{
		be: NewBoltBackend(config),
	}
	return c
}

func (c *Client) Open() error {
	return c.be.Open()
}

func (c *Client) Close() error {
	return c.be.Close()
}

func (c *Client) Backend() Backend {
	return c.be
}

// Purge drops the named tables.  They are recreated on next write.
func (c *Client) Purge(tables ...string) error {
	if err := c.be.Drop(tables...); err != nil {
		return errors.Wrap(err, "purge")
	}
	return nil
}

// WithClient is a convenience utility which handles DB client construction,
// open, and close.
func WithClient(config *BoltConfig, fn func(dbClient *Client) error) (err error) {
	dbClient := NewClient(config)

	if err = dbClient.Open(); err != nil {
		err = fmt.Errorf("opening DB client: %s", err)
		return
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			if err == nil {
				err = fmt.Errorf("closing DB client: %s", closeErr)
			} else {
				log.Errorf("Existing error before attempt to close DB client: %s", err)
				log.Errorf("Also encountered problem closing DB client: %s", closeErr)
			}
		}
	}()

	err = fn(dbClient)
	return
}

// MetaSave stores a metadata value.  src may be raw []byte, a string, or any
// JSON-marshalable value.
func (c *Client) MetaSave(key string, src interface{}) error {
	var v []byte
	switch typed := src.(type) {
	case []byte:
		v = typed
	case string:
		v = []byte(typed)
	default:
		var err error
		if v, err = json.Marshal(src); err != nil {
			return errors.Wrapf(err, "marshalling %T", src)
		}
	}
	return c.be.Put(TableMetadata, []byte(key), v)
}

func (c *Client) MetaDelete(key string) error {
	return c.be.Delete(TableMetadata, []byte(key))
}

// Meta retrieves a metadata value into dst, which must be *[]byte, *string,
// or a JSON-unmarshalable pointer.  A missing key yields ErrKeyNotFound.
func (c *Client) Meta(key string, dst interface{}) error {
	v, err := c.be.Get(TableMetadata, []byte(key))
	if err != nil {
		return err
	}
	switch typed := dst.(type) {
	case *[]byte:
		*typed = v
	case *string:
		*typed = string(v)
	default:
		if err := json.Unmarshal(v, dst); err != nil {
			return errors.Wrapf(err, "unmarshalling metadata key %q", key)
		}
	}
	return nil
}

// runKey sorts runs chronologically.
func runKey(run *domain.RunSummary) []byte {
	return []byte(fmt.Sprintf("%020d/%v", run.StartedAt.UnixNano(), run.RunID))
}

// RunSave archives a run summary and marks it as the last run.
func (c *Client) RunSave(run *domain.RunSummary) error {
	v, err := json.Marshal(run)
	if err != nil {
		return errors.Wrap(err, "marshalling run summary")
	}
	if err := c.be.Put(TableRuns, runKey(run), v); err != nil {
		return errors.Wrap(err, "saving run summary")
	}
	if err := c.MetaSave(MetaLastRun, run.FinishedAt); err != nil {
		return errors.Wrap(err, "saving last-run marker")
	}
	return nil
}

// EachRun iterates over archived runs, oldest first.
func (c *Client) EachRun(fn func(run *domain.RunSummary)) error {
	var err error
	if iterErr := c.be.EachRowWithBreak(TableRuns, func(k []byte, v []byte) bool {
		run := &domain.RunSummary{}
		if err = json.Unmarshal(v, run); err != nil {
			err = errors.Wrapf(err, "unmarshalling run %q", string(k))
			return false
		}
		fn(run)
		return true
	}); iterErr != nil {
		return iterErr
	}
	return err
}

// LatestRuns returns up to n archived runs, newest first.  n<=0 returns all.
func (c *Client) LatestRuns(n int) ([]*domain.RunSummary, error) {
	var (
		runs = []*domain.RunSummary{}
		err  error
	)
	if iterErr := c.be.EachRowReverseWithBreak(TableRuns, func(k []byte, v []byte) bool {
		run := &domain.RunSummary{}
		if err = json.Unmarshal(v, run); err != nil {
			err = errors.Wrapf(err, "unmarshalling run %q", string(k))
			return false
		}
		runs = append(runs, run)
		return n <= 0 || len(runs) < n
	}); iterErr != nil {
		return nil, iterErr
	}
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func (c *Client) RunsLen() (int, error) {
	return c.be.Len(TableRuns)
}

// IndexLookup returns a cached package index lookup, or nil when none exists.
func (c *Client) IndexLookup(name string) (*domain.IndexLookup, error) {
	v, err := c.be.Get(TableIndexLookup, []byte(name))
	if err == ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	lookup := &domain.IndexLookup{}
	if err := json.Unmarshal(v, lookup); err != nil {
		return nil, errors.Wrapf(err, "unmarshalling index lookup %q", name)
	}
	return lookup, nil
}

func (c *Client) IndexLookupSave(lookup *domain.IndexLookup) error {
	v, err := json.Marshal(lookup)
	if err != nil {
		return errors.Wrap(err, "marshalling index lookup")
	}
	return c.be.Put(TableIndexLookup, []byte(lookup.Name), v)
}
