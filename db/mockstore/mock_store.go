package mockstore

import (
	"context"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

func (s *Store) GetCurrentVersion(ctx context.Context) (*model.Version, error) {
	args := s.Called(ctx)

	var v *model.Version
	if args.Get(0) != nil {
		v = args.Get(0).(*model.Version)
	}
	return v, args.Error(1)
}

func (s *Store) GetVersion(ctx context.Context, id int32) (*model.Version, error) {
	args := s.Called(ctx, id)

	var v *model.Version
	if args.Get(0) != nil {
		v = args.Get(0).(*model.Version)
	}
	return v, args.Error(1)
}

func (s *Store) ListVersions(ctx context.Context) ([]model.Version, error) {
	args := s.Called(ctx)

	var r []model.Version
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Version)
	}
	return r, args.Error(1)
}

func (s *Store) MaxVersionNumber(ctx context.Context) (int32, error) {
	args := s.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (s *Store) CreateVersion(ctx context.Context, number int32, notes string) (*model.Version, error) {
	args := s.Called(ctx, number, notes)

	var v *model.Version
	if args.Get(0) != nil {
		v = args.Get(0).(*model.Version)
	}
	return v, args.Error(1)
}

func (s *Store) ArchiveCurrentVersion(ctx context.Context) error {
	args := s.Called(ctx)
	return args.Error(0)
}

func (s *Store) SetCurrentVersion(ctx context.Context, id int32) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *Store) DeleteVersion(ctx context.Context, id int32) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *Store) InsertPlayerRecords(ctx context.Context, versionID int32, records []model.PlayerRecord) error {
	args := s.Called(ctx, versionID, records)
	return args.Error(0)
}

func (s *Store) GetVersionPlayers(ctx context.Context, versionID int32) ([]model.PlayerRecord, error) {
	args := s.Called(ctx, versionID)

	var r []model.PlayerRecord
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PlayerRecord)
	}
	return r, args.Error(1)
}

func (s *Store) LatestVersionWithPlayers(ctx context.Context, excludeID int32) (*model.Version, error) {
	args := s.Called(ctx, excludeID)

	var v *model.Version
	if args.Get(0) != nil {
		v = args.Get(0).(*model.Version)
	}
	return v, args.Error(1)
}
