package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
	"github.com/dmitrijs2005/moodkeeper/internal/journal"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/rpc"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

// Analyzer runs the text pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, text string) analysis.FullAnalysisResult
}

// Journal is the part of the entry store the service exposes.
type Journal interface {
	CreateEntry(ctx context.Context, in journal.NewEntry) (journal.EncryptedJournalEntry, error)
	ReadAll(ctx context.Context) ([]journal.JournalEntry, []string)
	DeleteEntry(ctx context.Context, id string) error
}

type GRPCServer struct {
	address   string
	analyzer  Analyzer
	journal   Journal
	logger    logging.Logger
	jwtSecret []byte
	limiter   *rate.Limiter
}

// NewGRPCServer builds the companion journal service. Requests beyond
// ratePerSec (with burst) are rejected.
func NewGRPCServer(a string, l logging.Logger, an Analyzer, j Journal, secretKey []byte, ratePerSec float64, burst int) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		analyzer:  an,
		journal:   j,
		jwtSecret: secretKey,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.rateLimitInterceptor, s.accessTokenInterceptor))
	rpc.RegisterJournalServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
