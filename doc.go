// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package quicklog provides a deferred, single-producer single-consumer
// logging core: callsites encode their arguments into a byte arena and
// enqueue a record, and a separate drain step turns queued records into
// formatted lines later. Only the eager Display and Debug strategies
// format at the callsite; every callsite that passes the level filter
// still makes a few small heap allocations for the record's metadata
// and materializer.
//
// # Quick Start
//
//	logger, err := quicklog.Init(
//	    quicklog.WithArenaCapacity(1<<20),
//	    quicklog.WithQueueCapacity(4096),
//	    quicklog.WithMinLevel(quicklog.LevelInfo),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger.Infof("connected to {}", quicklog.Value(remoteAddr))
//
//	// Elsewhere, on a timer or a dedicated goroutine:
//	for {
//	    if err := logger.Flush(); err != nil {
//	        log.Println(err)
//	    }
//	    time.Sleep(time.Millisecond)
//	}
//
// # Basic Usage
//
// A callsite picks one of four argument strategies per value:
//
//	quicklog.Serialize(v)  // v implements serialize.Serialize itself
//	quicklog.Value(v)      // clone-defer: byte copy of a scalar
//	quicklog.Display(v)    // eager fmt.Sprint at the callsite
//	quicklog.Debug(v)      // eager "%+v" at the callsite
//
// Positional templates use "{}" placeholders filled in argument order:
//
//	logger.Infof("retrying {} of {}", quicklog.Value(attempt), quicklog.Value(maxAttempts))
//
// The structured field form binds arguments to explicit names, appended
// after the message as "name=value":
//
//	logger.InfoFields("request completed",
//	    quicklog.Named("status", quicklog.Value(status)),
//	    quicklog.Named("latency_ms", quicklog.Value(latencyMs)),
//	)
//
// # Aggregates
//
// Package logfield builds a Serialize value out of a struct's tagged
// fields, producing a "TypeName { field: value, ... }" display:
//
//	order := logfield.New("Order",
//	    logfield.F("id", serialize.Int[int64]{V: 42}),
//	    logfield.F("price", serialize.Optional[serialize.Flt[float64]]{Value: &price}),
//	)
//	logger.Infof("order placed: {}", quicklog.Serialize(order))
//
// # Error Handling
//
// log operations return only [ErrWouldBlock]-compatible errors, when the
// arena or the queue has no room; these are not failures, they mean
// the record was dropped and the caller may retry. A sink failure
// surfaces from Flush instead, as an *Error of Kind SinkError:
//
//	if err := logger.Infof("{}", quicklog.Value(n)); quicklog.IsWouldBlock(err) {
//	    // arena or queue was full; record dropped
//	}
//	if err := logger.Flush(); err != nil {
//	    // sink failure; err.(*quicklog.Error).Kind == quicklog.SinkError
//	}
//
// # Levels
//
// Levels form the total order Trace < Debug < Info < Warn < Error.
// [Logger.SetMinLevel] changes that Logger's filter; a callsite below
// the current minimum does no arena or queue work at all.
//
// # Thread Safety
//
// Exactly one goroutine may call the logging methods (Tracef, ...,
// InfoFields, ...) and exactly one goroutine may call Flush; they may
// be different goroutines, but there must never be more than one of
// each. This mirrors the single-producer single-consumer queue that
// backs both the arena and the record queue: violating it causes data
// corruption, not just a race detector warning.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering and [code.hybscloud.com/iox] for the
// [ErrWouldBlock] semantic error convention, the same foundation the
// module's SPSC queue is built on.
package quicklog
