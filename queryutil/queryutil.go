// Package queryutil provides cross-cutting helpers for the ad-hoc Flight SQL
// client: saving query results to Arrow IPC stream files and printing
// formatted status and result output to the console.
//
// All functions are stateless. Console reporting writes unstructured,
// line-oriented text intended for humans; serialization produces a standard
// streaming Arrow IPC payload readable by any conforming IPC reader.
package queryutil

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Console sinks. Package variables so tests can capture output.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// prefix tags a console line with its severity label.
type prefix int

const (
	prefixInfo prefix = iota
	prefixError
)

// prefixes maps each prefix tag to its literal label.
// Every label MUST be non-empty.
var prefixes = map[prefix]string{
	prefixInfo:  "[INFO]",
	prefixError: "[ERROR]",
}

// filler frames a section line with a divider on both sides.
type filler int

const (
	fillerHeader filler = iota
	fillerFooter
)

// fillers maps each filler tag to its literal divider string.
// Every divider MUST be non-empty.
var fillers = map[filler]string{
	fillerHeader: "------------------",
	fillerFooter: "==================",
}

// WriteBatch writes the given record to w as a single streaming Arrow IPC
// payload: schema message, one record batch, end-of-stream marker. The IPC
// writer is closed on every exit path; write errors are propagated unchanged.
func WriteBatch(rec arrow.Record, w io.Writer) error {
	ww := ipc.NewWriter(w,
		ipc.WithSchema(rec.Schema()),
		ipc.WithAllocator(memory.DefaultAllocator),
	)
	if err := ww.Write(rec); err != nil {
		ww.Close()
		return err
	}
	// Close emits the end-of-stream marker.
	return ww.Close()
}

// WriteToBinaryFile writes the given record to the file at path as a single
// streaming Arrow IPC payload, creating or truncating the file. The file
// handle is closed on every exit path, success or failure. I/O errors are
// propagated to the caller unchanged; no retry, no partial-file cleanup.
func WriteToBinaryFile(rec arrow.Record, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteBatch(rec, f)
}

// PrintAuthenticated reports a successful authentication with the server
// at host:port.
//
// The misspelling of "successfully" is intentional: existing consumers match
// on the exact line, so the historical text is preserved.
func PrintAuthenticated(host string, port int) {
	printLine(prefixInfo, fmt.Sprintf("Authenticated with %s:%d sucessfully", host, port))
}

// PrintPreamble announces that query results are about to be printed.
func PrintPreamble() {
	printLine(prefixInfo, "Printing query results.")
}

// PrintRunningQuery announces that a query is being executed. The query text
// is accepted for symmetry with the call site but is not echoed.
func PrintRunningQuery(query string) {
	printLine(prefixInfo, "Running query.")
}

// PrintResults prints the contents of the given record to the console:
// a framed header line, the tab-separated rendering of the record, and a
// framed footer line with the total row count.
func PrintResults(rec arrow.Record) {
	printFramed(fillerHeader, "Query results")
	fmt.Fprintln(stdout, ToTSVString(rec))
	printFramed(fillerFooter, fmt.Sprintf("Number of records retrieved: %d", rec.NumRows()))
}

// PrintErrorOnClosed reports an error encountered while closing a resource.
// The message goes to stdout as an ERROR line, the full diagnostic trace to
// stderr. The error is not re-raised; reporting is the whole handling.
func PrintErrorOnClosed(err error) {
	printLine(prefixError, err.Error())
	fmt.Fprintf(stderr, "%+v\n", err)
}

func printLine(p prefix, message string) {
	fmt.Fprintln(stdout, prefixes[p]+" "+message)
}

func printFramed(f filler, message string) {
	div := fillers[f]
	fmt.Fprintln(stdout, div+" "+message+" "+div)
}
