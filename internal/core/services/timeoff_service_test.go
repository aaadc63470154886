package services

import (
	"context"
	"testing"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/core/domain"
)

func newTimeOffFixture(employees []*models.Employee, timeOffs []*models.TimeOff) *TimeOffService {
	return NewTimeOffService(newStubTimeOffRepo(timeOffs...), newStubEmployeeRepo(employees...))
}

func TestTimeOffCreate(t *testing.T) {
	employee := &models.Employee{Email: "bob@example.com"}
	svc := newTimeOffFixture([]*models.Employee{employee}, nil)

	timeOff, err := svc.Create(context.Background(), &CreateTimeOffInput{
		EmployeeID: employee.ID,
		StartDate:  mondayDate,
		EndDate:    mondayDate.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if timeOff.Status != models.TimeOffPending {
		t.Errorf("New request must be pending, got %q", timeOff.Status)
	}
}

func TestTimeOffCreate_SingleDay(t *testing.T) {
	employee := &models.Employee{Email: "bob@example.com"}
	svc := newTimeOffFixture([]*models.Employee{employee}, nil)

	// Equal start and end dates are a valid one-day request.
	timeOff, err := svc.Create(context.Background(), &CreateTimeOffInput{
		EmployeeID: employee.ID,
		StartDate:  mondayDate,
		EndDate:    mondayDate,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !timeOff.Covers(mondayDate) {
		t.Error("One-day request must cover its own date")
	}
}

func TestTimeOffCreate_EndBeforeStart(t *testing.T) {
	employee := &models.Employee{Email: "bob@example.com"}
	svc := newTimeOffFixture([]*models.Employee{employee}, nil)

	_, err := svc.Create(context.Background(), &CreateTimeOffInput{
		EmployeeID: employee.ID,
		StartDate:  mondayDate,
		EndDate:    mondayDate.AddDate(0, 0, -1),
	})
	if err != domain.ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestTimeOffCreate_UnknownEmployee(t *testing.T) {
	svc := newTimeOffFixture(nil, nil)

	_, err := svc.Create(context.Background(), &CreateTimeOffInput{
		EmployeeID: 42,
		StartDate:  mondayDate,
		EndDate:    mondayDate,
	})
	if err != domain.ErrEmployeeNotFound {
		t.Errorf("Expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTimeOffApproveAndReject(t *testing.T) {
	pending1 := &models.TimeOff{EmployeeID: 1, StartDate: mondayDate, EndDate: mondayDate}
	pending2 := &models.TimeOff{EmployeeID: 1, StartDate: mondayDate, EndDate: mondayDate}
	svc := newTimeOffFixture(nil, []*models.TimeOff{pending1, pending2})

	approved, err := svc.Approve(context.Background(), pending1.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != models.TimeOffApproved {
		t.Errorf("Expected approved, got %q", approved.Status)
	}

	rejected, err := svc.Reject(context.Background(), pending2.ID)
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != models.TimeOffRejected {
		t.Errorf("Expected rejected, got %q", rejected.Status)
	}
}

func TestTimeOffFinalize_AlreadyFinalized(t *testing.T) {
	approved := &models.TimeOff{
		EmployeeID: 1,
		StartDate:  mondayDate,
		EndDate:    mondayDate,
		Status:     models.TimeOffApproved,
	}
	svc := newTimeOffFixture(nil, []*models.TimeOff{approved})

	// Approval is final in both directions.
	if _, err := svc.Reject(context.Background(), approved.ID); err != ErrTimeOffFinalized {
		t.Errorf("Expected ErrTimeOffFinalized, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), approved.ID); err != ErrTimeOffFinalized {
		t.Errorf("Expected ErrTimeOffFinalized, got %v", err)
	}
}

func TestTimeOffFinalize_NotFound(t *testing.T) {
	svc := newTimeOffFixture(nil, nil)

	if _, err := svc.Approve(context.Background(), 99); err != domain.ErrTimeOffNotFound {
		t.Errorf("Expected ErrTimeOffNotFound, got %v", err)
	}
}
