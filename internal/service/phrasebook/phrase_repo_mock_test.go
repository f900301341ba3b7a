package phrasebook

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

var _ phraseRepo = &phraseRepoMock{}

type phraseRepoMock struct {
	GetByKeyFunc func(ctx context.Context, key domain.SavedPhraseKey) (*domain.SavedPhrase, error)
	CreateFunc   func(ctx context.Context, sp *domain.SavedPhrase) error
	TouchFunc    func(ctx context.Context, id uuid.UUID, practicedAt time.Time, englishMeaning *string) error
	ListFunc     func(ctx context.Context, filter domain.SavedPhraseFilter) ([]domain.SavedPhrase, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByKey []struct {
			Ctx context.Context
			Key domain.SavedPhraseKey
		}
		Create []struct {
			Ctx context.Context
			Sp  *domain.SavedPhrase
		}
		Touch []struct {
			Ctx            context.Context
			ID             uuid.UUID
			PracticedAt    time.Time
			EnglishMeaning *string
		}
		List []struct {
			Ctx    context.Context
			Filter domain.SavedPhraseFilter
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByKey sync.RWMutex
	lockCreate   sync.RWMutex
	lockTouch    sync.RWMutex
	lockList     sync.RWMutex
	lockDelete   sync.RWMutex
}

func (mock *phraseRepoMock) GetByKey(ctx context.Context, key domain.SavedPhraseKey) (*domain.SavedPhrase, error) {
	if mock.GetByKeyFunc == nil {
		panic("phraseRepoMock.GetByKeyFunc: method is nil but phraseRepo.GetByKey was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.SavedPhraseKey
	}{Ctx: ctx, Key: key}
	mock.lockGetByKey.Lock()
	mock.calls.GetByKey = append(mock.calls.GetByKey, callInfo)
	mock.lockGetByKey.Unlock()
	return mock.GetByKeyFunc(ctx, key)
}

func (mock *phraseRepoMock) GetByKeyCalls() []struct {
	Ctx context.Context
	Key domain.SavedPhraseKey
} {
	mock.lockGetByKey.RLock()
	calls := mock.calls.GetByKey
	mock.lockGetByKey.RUnlock()
	return calls
}

func (mock *phraseRepoMock) Create(ctx context.Context, sp *domain.SavedPhrase) error {
	if mock.CreateFunc == nil {
		panic("phraseRepoMock.CreateFunc: method is nil but phraseRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Sp  *domain.SavedPhrase
	}{Ctx: ctx, Sp: sp}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, sp)
}

func (mock *phraseRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Sp  *domain.SavedPhrase
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *phraseRepoMock) Touch(ctx context.Context, id uuid.UUID, practicedAt time.Time, englishMeaning *string) error {
	if mock.TouchFunc == nil {
		panic("phraseRepoMock.TouchFunc: method is nil but phraseRepo.Touch was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		ID             uuid.UUID
		PracticedAt    time.Time
		EnglishMeaning *string
	}{Ctx: ctx, ID: id, PracticedAt: practicedAt, EnglishMeaning: englishMeaning}
	mock.lockTouch.Lock()
	mock.calls.Touch = append(mock.calls.Touch, callInfo)
	mock.lockTouch.Unlock()
	return mock.TouchFunc(ctx, id, practicedAt, englishMeaning)
}

func (mock *phraseRepoMock) TouchCalls() []struct {
	Ctx            context.Context
	ID             uuid.UUID
	PracticedAt    time.Time
	EnglishMeaning *string
} {
	mock.lockTouch.RLock()
	calls := mock.calls.Touch
	mock.lockTouch.RUnlock()
	return calls
}

func (mock *phraseRepoMock) List(ctx context.Context, filter domain.SavedPhraseFilter) ([]domain.SavedPhrase, error) {
	if mock.ListFunc == nil {
		panic("phraseRepoMock.ListFunc: method is nil but phraseRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.SavedPhraseFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *phraseRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.SavedPhraseFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *phraseRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("phraseRepoMock.DeleteFunc: method is nil but phraseRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *phraseRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
