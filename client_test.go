package adhoc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/flight/flightsql"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cast"
	"google.golang.org/grpc/metadata"
)

// testServer serves a fixed three-row result for any statement.
type testServer struct {
	flightsql.BaseServer
	schema *arrow.Schema
}

func newTestServer() *testServer {
	s := &testServer{
		schema: arrow.NewSchema([]arrow.Field{
			{Name: "id", Type: arrow.PrimitiveTypes.Int64},
			{Name: "name", Type: arrow.BinaryTypes.String},
		}, nil),
	}
	s.Alloc = memory.DefaultAllocator
	return s
}

func (s *testServer) GetFlightInfoStatement(ctx context.Context, cmd flightsql.StatementQuery, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	ticket, err := flightsql.CreateStatementQueryTicket([]byte(cmd.GetQuery()))
	if err != nil {
		return nil, err
	}
	return &flight.FlightInfo{
		FlightDescriptor: desc,
		Endpoint: []*flight.FlightEndpoint{{
			Ticket: &flight.Ticket{Ticket: ticket},
		}},
		TotalRecords: -1,
		TotalBytes:   -1,
		Schema:       flight.SerializeSchema(s.schema, s.Alloc),
	}, nil
}

func (s *testServer) DoGetStatement(ctx context.Context, ticket flightsql.StatementQueryTicket) (*arrow.Schema, <-chan flight.StreamChunk, error) {
	builder := array.NewRecordBuilder(s.Alloc, s.schema)
	defer builder.Release()
	builder.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	builder.Field(1).(*array.StringBuilder).AppendValues([]string{"Alice", "Bob", "Carol"}, nil)
	rec := builder.NewRecord()

	ch := make(chan flight.StreamChunk, 1)
	ch <- flight.StreamChunk{Data: rec}
	close(ch)
	return s.schema, ch, nil
}

// startTestServer runs an in-process Flight SQL server and returns a Config
// pointing at it.
func startTestServer(t *testing.T) Config {
	t.Helper()

	srv := flight.NewServerWithMiddleware(nil)
	if err := srv.Init("localhost:0"); err != nil {
		t.Fatalf("init test server: %v", err)
	}
	srv.RegisterFlightService(flightsql.NewFlightServer(newTestServer()))
	go srv.Serve()
	t.Cleanup(srv.Shutdown)

	host, portStr, err := net.SplitHostPort(srv.Addr().String())
	if err != nil {
		t.Fatalf("split server addr: %v", err)
	}
	return Config{Host: host, Port: cast.ToInt(portStr)}
}

func TestClientExecute(t *testing.T) {
	cfg := startTestServer(t)

	ctx := context.Background()
	client, err := Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	records, err := client.Execute(ctx, "SELECT id, name FROM users")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	defer func() {
		for _, rec := range records {
			rec.Release()
		}
	}()

	if len(records) != 1 {
		t.Fatalf("expected 1 record batch, got %d", len(records))
	}
	rec := records[0]
	if rec.NumRows() != 3 {
		t.Errorf("expected 3 rows, got %d", rec.NumRows())
	}
	if rec.NumCols() != 2 {
		t.Errorf("expected 2 columns, got %d", rec.NumCols())
	}
	if name := rec.ColumnName(1); name != "name" {
		t.Errorf("column 1 name = %q, want %q", name, "name")
	}
}

func TestConnectValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty host", cfg: Config{Port: 32010}},
		{name: "zero port", cfg: Config{Host: "localhost"}},
		{name: "port out of range", cfg: Config{Host: "localhost", Port: 70000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Connect(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestTokenFromHandshake(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{
			name: "bearer token present",
			ctx: metadata.NewOutgoingContext(context.Background(),
				metadata.Pairs("authorization", "Bearer handshake-token")),
			want: "handshake-token",
		},
		{
			name: "no metadata",
			ctx:  context.Background(),
			want: "",
		},
		{
			name: "malformed header",
			ctx: metadata.NewOutgoingContext(context.Background(),
				metadata.Pairs("authorization", "handshake-token")),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenFromHandshake(tt.ctx); got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
