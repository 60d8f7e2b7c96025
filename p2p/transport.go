package p2p

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Decoder turns a framed message's header and payload into a typed chain
// object. Implementations are supplied by the caller; p2p only needs the
// shape to drive dispatch.
type Decoder func(header Header, payload []byte) (interface{}, error)

// Transport hands framed messages to a Decoder as they arrive. It is
// deliberately minimal: no connection state, no peer identity, no
// handshake. A concrete socket- or test-backed implementation lives
// outside this package.
type Transport interface {
	// Recv blocks until a complete framed message is available, or ctx
	// is done.
	Recv(ctx context.Context) (Header, []byte, error)

	// Send frames and transmits a single message.
	Send(ctx context.Context, magic uint32, command string, payload []byte) error
}

// Pool fetches a batch of framed requests concurrently over a Transport,
// bounding the number of requests in flight at once.
type Pool struct {
	Transport Transport
	Decoder   Decoder
	Fanout    int
}

// Fetch issues one Send per request and collects the matching decoded
// reply for each, running up to p.Fanout requests concurrently. It
// returns the first error encountered and cancels the remaining work.
func (p Pool) Fetch(ctx context.Context, requests []Request) ([]interface{}, error) {
	if p.Fanout <= 0 {
		p.Fanout = 1
	}

	results := make([]interface{}, len(requests))
	eg, egCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, p.Fanout)

	for i, req := range requests {
		i, req := i, req
		sem <- struct{}{}
		eg.Go(func() error {
			defer func() { <-sem }()

			if err := p.Transport.Send(egCtx, req.Magic, req.Command, req.Payload); err != nil {
				return fmt.Errorf("sending request %d: %w", i, err)
			}
			header, payload, err := p.Transport.Recv(egCtx)
			if err != nil {
				return fmt.Errorf("receiving reply %d: %w", i, err)
			}
			if !VerifyChecksum(header, payload) {
				return fmt.Errorf("reply %d: checksum mismatch", i)
			}
			decoded, err := p.Decoder(header, payload)
			if err != nil {
				return fmt.Errorf("decoding reply %d: %w", i, err)
			}
			results[i] = decoded
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Request is a single outbound message awaiting its matching reply.
type Request struct {
	Magic   uint32
	Command string
	Payload []byte
}
