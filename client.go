package adhoc

import (
	"context"
	"crypto/tls"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight/flightsql"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/adhoc-flight/adhoc-go/auth"
)

// Client is a connected Flight SQL client. Create with Connect, release
// with Close. Safe for concurrent use once connected.
type Client struct {
	fsql *flightsql.Client
	cfg  Config

	// token is the bearer token captured from the basic-auth handshake.
	// Empty when unauthenticated or when a PAT rides per-RPC credentials.
	token string
}

// Connect dials the configured Flight SQL server and, when credentials are
// present, authenticates:
//   - PAT set: the token is attached to every call as a bearer credential.
//   - User set: the Flight basic-auth handshake runs once and the returned
//     bearer token is reused for all subsequent calls.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var opts []grpc.DialOption
	if cfg.TLS {
		creds := credentials.NewTLS(&tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify})
		opts = append(opts, grpc.WithTransportCredentials(creds))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	if cfg.PAT != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.BearerCredentials(cfg.PAT)))
	}

	fsql, err := flightsql.NewClient(cfg.Addr(), nil, nil, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", cfg.Addr())
	}

	c := &Client{fsql: fsql, cfg: cfg}
	if cfg.PAT == "" && cfg.User != "" {
		authCtx, err := fsql.Client.AuthenticateBasicToken(ctx, cfg.User, cfg.Pass)
		if err != nil {
			fsql.Close()
			return nil, errors.Wrap(err, "basic auth handshake")
		}
		c.token = tokenFromHandshake(authCtx)
		slog.Debug("flight sql handshake complete", "addr", cfg.Addr(), "user", cfg.User)
	}
	return c, nil
}

// tokenFromHandshake pulls the bearer token out of the outgoing metadata
// that AuthenticateBasicToken leaves on the returned context.
func tokenFromHandshake(ctx context.Context) string {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	token, err := auth.TokenFromAuthorizationHeader(vals[0])
	if err != nil {
		return ""
	}
	return token
}

// callContext attaches the handshake bearer token, when present, to the
// outgoing call metadata.
func (c *Client) callContext(ctx context.Context) context.Context {
	if c.token == "" {
		return ctx
	}
	return auth.AttachToOutgoing(auth.WithBearerToken(ctx, c.token))
}

// Execute runs the query and collects every result batch from every
// endpoint of the returned flight, fetching endpoints concurrently while
// preserving endpoint order. Returned records are retained for the caller,
// who MUST Release() each one.
func (c *Client) Execute(ctx context.Context, query string) ([]arrow.Record, error) {
	ctx = c.callContext(ctx)

	info, err := c.fsql.Execute(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "execute query")
	}
	slog.Debug("query accepted", "endpoints", len(info.Endpoint))

	perEndpoint := make([][]arrow.Record, len(info.Endpoint))
	g, gctx := errgroup.WithContext(ctx)
	for i, ep := range info.Endpoint {
		g.Go(func() error {
			rdr, err := c.fsql.DoGet(gctx, ep.Ticket)
			if err != nil {
				return errors.Wrapf(err, "fetch endpoint %d", i)
			}
			defer rdr.Release()

			for rdr.Next() {
				rec := rdr.Record()
				rec.Retain()
				perEndpoint[i] = append(perEndpoint[i], rec)
			}
			return errors.Wrapf(rdr.Err(), "read endpoint %d", i)
		})
	}
	if err := g.Wait(); err != nil {
		for _, recs := range perEndpoint {
			for _, rec := range recs {
				rec.Release()
			}
		}
		return nil, err
	}

	var records []arrow.Record
	for _, recs := range perEndpoint {
		records = append(records, recs...)
	}
	return records, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.fsql.Close()
}
