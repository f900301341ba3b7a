package seeder

import (
	"context"
	"sync"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

var _ Gate = &GateMock{}

type GateMock struct {
	IsDoneFunc   func(ctx context.Context, seedName string) (bool, error)
	MarkDoneFunc func(ctx context.Context, seedName string) error
	ClearAllFunc func(ctx context.Context) (int, error)

	calls struct {
		IsDone []struct {
			Ctx      context.Context
			SeedName string
		}
		MarkDone []struct {
			Ctx      context.Context
			SeedName string
		}
		ClearAll []struct {
			Ctx context.Context
		}
	}
	lockIsDone   sync.RWMutex
	lockMarkDone sync.RWMutex
	lockClearAll sync.RWMutex
}

func (mock *GateMock) IsDone(ctx context.Context, seedName string) (bool, error) {
	if mock.IsDoneFunc == nil {
		panic("GateMock.IsDoneFunc: method is nil but Gate.IsDone was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		SeedName string
	}{Ctx: ctx, SeedName: seedName}
	mock.lockIsDone.Lock()
	mock.calls.IsDone = append(mock.calls.IsDone, callInfo)
	mock.lockIsDone.Unlock()
	return mock.IsDoneFunc(ctx, seedName)
}

func (mock *GateMock) IsDoneCalls() []struct {
	Ctx      context.Context
	SeedName string
} {
	mock.lockIsDone.RLock()
	calls := mock.calls.IsDone
	mock.lockIsDone.RUnlock()
	return calls
}

func (mock *GateMock) MarkDone(ctx context.Context, seedName string) error {
	if mock.MarkDoneFunc == nil {
		panic("GateMock.MarkDoneFunc: method is nil but Gate.MarkDone was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		SeedName string
	}{Ctx: ctx, SeedName: seedName}
	mock.lockMarkDone.Lock()
	mock.calls.MarkDone = append(mock.calls.MarkDone, callInfo)
	mock.lockMarkDone.Unlock()
	return mock.MarkDoneFunc(ctx, seedName)
}

func (mock *GateMock) MarkDoneCalls() []struct {
	Ctx      context.Context
	SeedName string
} {
	mock.lockMarkDone.RLock()
	calls := mock.calls.MarkDone
	mock.lockMarkDone.RUnlock()
	return calls
}

func (mock *GateMock) ClearAll(ctx context.Context) (int, error) {
	if mock.ClearAllFunc == nil {
		panic("GateMock.ClearAllFunc: method is nil but Gate.ClearAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockClearAll.Lock()
	mock.calls.ClearAll = append(mock.calls.ClearAll, callInfo)
	mock.lockClearAll.Unlock()
	return mock.ClearAllFunc(ctx)
}

func (mock *GateMock) ClearAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockClearAll.RLock()
	calls := mock.calls.ClearAll
	mock.lockClearAll.RUnlock()
	return calls
}

var _ seedImporter = &seedImporterMock{}

type seedImporterMock struct {
	UpsertSeedFunc func(ctx context.Context, name string) (domain.ImportResult, error)

	calls struct {
		UpsertSeed []struct {
			Ctx  context.Context
			Name string
		}
	}
	lockUpsertSeed sync.RWMutex
}

func (mock *seedImporterMock) UpsertSeed(ctx context.Context, name string) (domain.ImportResult, error) {
	if mock.UpsertSeedFunc == nil {
		panic("seedImporterMock.UpsertSeedFunc: method is nil but seedImporter.UpsertSeed was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockUpsertSeed.Lock()
	mock.calls.UpsertSeed = append(mock.calls.UpsertSeed, callInfo)
	mock.lockUpsertSeed.Unlock()
	return mock.UpsertSeedFunc(ctx, name)
}

func (mock *seedImporterMock) UpsertSeedCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockUpsertSeed.RLock()
	calls := mock.calls.UpsertSeed
	mock.lockUpsertSeed.RUnlock()
	return calls
}
