package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/journal"
	"github.com/dmitrijs2005/moodkeeper/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Analyze(ctx context.Context, req *rpc.AnalyzeRequest) (*rpc.AnalyzeResponse, error) {
	if err := analysis.CheckText(req.Text); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result := s.analyzer.Analyze(ctx, req.Text)
	return &rpc.AnalyzeResponse{Result: result}, nil
}

func (s *GRPCServer) CreateEntry(ctx context.Context, req *rpc.CreateEntryRequest) (*rpc.CreateEntryResponse, error) {
	if err := analysis.CheckText(req.Text); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result := s.analyzer.Analyze(ctx, req.Text)

	in := journal.NewEntryFromAnalysis(req.Text, result)
	in.Health = req.Health
	in.VoiceTranscribed = req.VoiceTranscribed

	rec, err := s.journal.CreateEntry(ctx, in)
	if errors.Is(err, journal.ErrInvalidEntry) || errors.Is(err, common.ErrEmptyText) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		s.logger.Error(ctx, "create entry failed", "device", deviceID(ctx), "error", err)
		return nil, status.Error(codes.Internal, "entry not saved")
	}

	s.logger.Info(ctx, "entry created", "device", deviceID(ctx), "id", rec.ID)
	return &rpc.CreateEntryResponse{ID: rec.ID, Result: result}, nil
}

func (s *GRPCServer) ListEntries(ctx context.Context, req *rpc.ListEntriesRequest) (*rpc.ListEntriesResponse, error) {
	entries, failed := s.journal.ReadAll(ctx)
	return &rpc.ListEntriesResponse{Entries: entries, Failed: failed}, nil
}

func (s *GRPCServer) DeleteEntry(ctx context.Context, req *rpc.DeleteEntryRequest) (*rpc.DeleteEntryResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	if err := s.journal.DeleteEntry(ctx, req.ID); err != nil {
		s.logger.Error(ctx, "delete entry failed", "device", deviceID(ctx), "id", req.ID, "error", err)
		return nil, status.Error(codes.Internal, "entry not deleted")
	}

	s.logger.Info(ctx, "entry deleted", "device", deviceID(ctx), "id", req.ID)
	return &rpc.DeleteEntryResponse{}, nil
}
