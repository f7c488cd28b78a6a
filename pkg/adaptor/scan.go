package adaptor

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("adaptor")

// LinearScanStrategy inspects signatures one after the other.
type LinearScanStrategy struct {
	Config ScanConfig
}

// NewLinearScanStrategy creates a linear strategy with default settings.
func NewLinearScanStrategy() *LinearScanStrategy {
	return &LinearScanStrategy{Config: DefaultScanConfig()}
}

// Name returns the name of this strategy.
func (s *LinearScanStrategy) Name() string {
	return "LinearScan"
}

// Scan implements the ScanStrategy interface.
func (s *LinearScanStrategy) Scan(ctx context.Context, req *ScanRequest) *RecoveryResult {
	n := s.Config.limit(len(req.Signatures))
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if result := tryRecover(req, i); result != nil {
			return result
		}
	}
	return nil
}

// ParallelScanStrategy spreads signatures over a pool of workers. Cheap
// nonce comparisons reject almost every unrelated signature, so the pool
// mostly pays off for large batches.
type ParallelScanStrategy struct {
	Config ScanConfig
}

// NewParallelScanStrategy creates a parallel strategy with default settings.
func NewParallelScanStrategy() *ParallelScanStrategy {
	return &ParallelScanStrategy{Config: DefaultScanConfig()}
}

// WithScanConfig sets the scan configuration for the strategy.
func (s *ParallelScanStrategy) WithScanConfig(config ScanConfig) *ParallelScanStrategy {
	s.Config = config
	return s
}

// Name returns the name of this strategy.
func (s *ParallelScanStrategy) Name() string {
	return "ParallelScan"
}

// Scan implements the ScanStrategy interface.
func (s *ParallelScanStrategy) Scan(ctx context.Context, req *ScanRequest) *RecoveryResult {
	n := s.Config.limit(len(req.Signatures))
	if n == 0 {
		return nil
	}

	numWorkers := s.Config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > n {
		numWorkers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inspected := int64(0)
	resultChan := make(chan *RecoveryResult, 1)
	workChan := make(chan int, numWorkers*16)

	// Generate work
	go func() {
		defer close(workChan)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-workChan:
					if !ok {
						return
					}
					atomic.AddInt64(&inspected, 1)

					if result := tryRecover(req, i); result != nil {
						select {
						case resultChan <- result:
						default:
						}
						cancel()
						return
					}
				}
			}
		}()
	}

	// Wait for result or completion
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case result := <-resultChan:
		log.Debug("scan finished", "strategy", s.Name(), "inspected", atomic.LoadInt64(&inspected), "index", result.SignatureIndex)
		return result
	case <-done:
		// A worker may have delivered a result just before the pool drained.
		select {
		case result := <-resultChan:
			return result
		default:
		}
		log.Debug("scan finished without a match", "strategy", s.Name(), "inspected", atomic.LoadInt64(&inspected))
		return nil
	}
}

// tryRecover attempts key recovery from the i-th signature of req.
func tryRecover(req *ScanRequest, i int) *RecoveryResult {
	sig := req.Signatures[i]
	y, ok := req.Adaptor.RecoverDecryptionKey(req.EncryptionKey, req.Ciphertext, sig)
	if !ok {
		return nil
	}
	return &RecoveryResult{
		DecryptionKey:  y,
		SignatureIndex: i,
		Signature:      sig,
	}
}
