// Package adhoc provides a small client for running ad-hoc queries against
// an Arrow Flight SQL server and working with the results.
//
// The package handles:
//   - Dialing the server over gRPC, with optional TLS
//   - Authenticating via the Flight basic-auth handshake or a personal
//     access token (see the auth subpackage)
//   - Executing a query and collecting every endpoint's record batches
//
// Result presentation and serialization live in the queryutil subpackage:
// tab-separated and tabular console output, and saving batches as streaming
// Arrow IPC files.
//
// # Quick Start
//
//	cfg := adhoc.Config{Host: "localhost", Port: 32010, User: "dremio", Pass: "dremio123"}
//	client, err := adhoc.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	records, err := client.Execute(ctx, "SELECT * FROM employees")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range records {
//	    queryutil.PrintResults(rec)
//	    rec.Release()
//	}
//
// # Memory Management
//
// Arrow uses manual reference counting. Records returned by Execute are
// retained for the caller, who MUST call Release() on each one.
package adhoc
