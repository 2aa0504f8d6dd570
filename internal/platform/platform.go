package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ContentKind selects which content family an adapter call targets. Not
// every platform supports every kind; unsupported combinations return an
// *Error rather than panicking.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindMessage ContentKind = "message"
)

// Item is the canonical content record after adapter translation. Post-only
// fields (counters, media) and message-only fields (conversation, sender)
// are zero-valued when they do not apply.
type Item struct {
	ExternalID     string
	ConversationID string
	Content        string
	MediaURLs      []string
	Likes          int
	Comments       int
	Shares         int
	SenderID       string
	SenderName     string
	Timestamp      time.Time
	Raw            json.RawMessage
}

// AccountIdentity describes the external account behind a credential,
// returned when a page is first linked.
type AccountIdentity struct {
	ID             string
	Name           string
	ProfilePicture string
}

// FetchOptions windows a content listing by the platform-side timestamp
// (inclusive bounds). Limit defaults to 25 when unset.
type FetchOptions struct {
	Since *time.Time
	Until *time.Time
	Limit int
}

const DefaultFetchLimit = 25

func (o FetchOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultFetchLimit
	}
	return o.Limit
}

// CreateRequest carries the payload for publishing a post or sending a
// message. RecipientID and Subject only apply to messages.
type CreateRequest struct {
	Kind        ContentKind
	Content     string
	MediaURLs   []string
	RecipientID string
	Subject     string
}

// Adapter is the uniform capability set over one external platform. Each
// implementation translates platform-native schemas into canonical Items and
// reports failures as *Error, never raw transport errors.
type Adapter interface {
	Platform() string
	FetchContent(ctx context.Context, accountRef, credential string, kind ContentKind, opts FetchOptions) ([]Item, error)
	FetchContentByID(ctx context.Context, credential, externalID string) (*Item, error)
	CreateContent(ctx context.Context, accountRef, credential string, req CreateRequest) (string, error)
	VerifyCredential(ctx context.Context, credential string) (*AccountIdentity, error)
}

// Error wraps any upstream platform failure with the platform name and the
// upstream message.
type Error struct {
	Platform string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s api error: %s", e.Platform, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(platform, message string, err error) *Error {
	return &Error{Platform: platform, Message: message, Err: err}
}

// Registry resolves the adapter for a page's platform tag.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Platform()] = a
	}
	return r
}

func (r *Registry) ForPlatform(name string) (Adapter, error) {
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for platform %q", name)
	}
	return adapter, nil
}
