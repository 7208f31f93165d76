package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/models"
	"gorm.io/gorm"
)

type stubCreditUserRepo struct {
	balance     models.CreditBalance
	loadErr     error
	deductErr   error
	addErr      error
	deductCalls int
}

func (stub *stubCreditUserRepo) LoadCredits(uint) (models.CreditBalance, error) {
	if stub.loadErr != nil {
		return models.CreditBalance{}, stub.loadErr
	}
	return stub.balance, nil
}

func (stub *stubCreditUserRepo) DeductCredit(uint) (models.CreditBalance, error) {
	stub.deductCalls++
	if stub.deductErr != nil {
		return models.CreditBalance{}, stub.deductErr
	}
	return stub.balance, nil
}

func (stub *stubCreditUserRepo) AddCredits(_ uint, credits int, freeCredits int) (models.CreditBalance, error) {
	if stub.addErr != nil {
		return models.CreditBalance{}, stub.addErr
	}
	stub.balance.Credits += credits
	stub.balance.FreeCredits += freeCredits
	return stub.balance, nil
}

func TestCreditServiceHasCredit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance models.CreditBalance
		want    bool
	}{
		{name: "empty", balance: models.CreditBalance{}, want: false},
		{name: "free only", balance: models.CreditBalance{FreeCredits: 1}, want: true},
		{name: "paid only", balance: models.CreditBalance{Credits: 2}, want: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service := NewCreditService(&stubCreditUserRepo{balance: testCase.balance})
			got, err := service.HasCredit(1)
			if err != nil {
				t.Fatalf("HasCredit() unexpected error: %v", err)
			}
			if got != testCase.want {
				t.Fatalf("HasCredit() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestCreditServiceBalanceUnknownUser(t *testing.T) {
	t.Parallel()

	service := NewCreditService(&stubCreditUserRepo{loadErr: gorm.ErrRecordNotFound})
	if _, err := service.Balance(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreditServiceDeductMapsEmptyLedger(t *testing.T) {
	t.Parallel()

	service := NewCreditService(&stubCreditUserRepo{deductErr: db.ErrNoCreditAvailable})
	if _, err := service.Deduct(1); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestCreditServiceGrantRejectsInvalidAmounts(t *testing.T) {
	t.Parallel()

	service := NewCreditService(&stubCreditUserRepo{})
	if _, err := service.Grant(1, -1, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative grant, got %v", err)
	}
	if _, err := service.Grant(1, 0, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty grant, got %v", err)
	}
}

func TestCreditServiceDeductPrefersFreeCredits(t *testing.T) {
	t.Parallel()

	_, repositories := openServicesTestDB(t)
	user := createTestUser(t, repositories, "ledger@example.com", 2, 1)
	service := NewCreditService(repositories.Users)

	balance, err := service.Deduct(user.ID)
	if err != nil {
		t.Fatalf("first deduct: %v", err)
	}
	if balance.FreeCredits != 0 || balance.Credits != 2 {
		t.Fatalf("expected free credit consumed first, got %+v", balance)
	}

	balance, err = service.Deduct(user.ID)
	if err != nil {
		t.Fatalf("second deduct: %v", err)
	}
	if balance.FreeCredits != 0 || balance.Credits != 1 {
		t.Fatalf("expected paid credit consumed second, got %+v", balance)
	}

	if _, err := service.Deduct(user.ID); err != nil {
		t.Fatalf("third deduct: %v", err)
	}
	if _, err := service.Deduct(user.ID); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits on empty ledger, got %v", err)
	}

	final, err := service.Balance(user.ID)
	if err != nil {
		t.Fatalf("load balance: %v", err)
	}
	if final.Credits != 0 || final.FreeCredits != 0 {
		t.Fatalf("expected zero balance, got %+v", final)
	}
}

func TestCreditServiceConcurrentDeductSpendsLastCreditOnce(t *testing.T) {
	t.Parallel()

	_, repositories := openServicesTestDB(t)
	user := createTestUser(t, repositories, "race@example.com", 0, 1)
	service := NewCreditService(repositories.Users)

	const workers = 8
	var (
		wait      sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	wait.Add(workers)
	for worker := 0; worker < workers; worker++ {
		go func() {
			defer wait.Done()
			_, err := service.Deduct(user.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrInsufficientCredits):
				rejected++
			default:
				t.Errorf("unexpected deduct error: %v", err)
			}
		}()
	}
	wait.Wait()

	if succeeded != 1 || rejected != workers-1 {
		t.Fatalf("expected exactly one successful deduction, got %d succeeded and %d rejected", succeeded, rejected)
	}
	balance, err := service.Balance(user.ID)
	if err != nil {
		t.Fatalf("load balance: %v", err)
	}
	if balance.Credits != 0 || balance.FreeCredits != 0 {
		t.Fatalf("expected balance to stay at zero, got %+v", balance)
	}
}

func TestCreditServiceGrantAddsToBalance(t *testing.T) {
	t.Parallel()

	_, repositories := openServicesTestDB(t)
	user := createTestUser(t, repositories, "grant@example.com", 1, 0)
	service := NewCreditService(repositories.Users)

	balance, err := service.Grant(user.ID, 5, 2)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if balance.Credits != 6 || balance.FreeCredits != 2 {
		t.Fatalf("expected 6 paid and 2 free credits, got %+v", balance)
	}

	if _, err := service.Grant(user.ID+100, 1, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}
