package workorder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/money"
)

// ===============================
// Domain Actions
// ===============================

func RequestApproval(wo *models.WorkOrder) error {
	if err := CanRequestApproval(Status(wo.Status)); err != nil {
		return err
	}

	wo.Status = string(StatusAwaitingApproval)
	return nil
}

func Start(wo *models.WorkOrder, now time.Time) error {
	if err := CanStart(Status(wo.Status)); err != nil {
		return err
	}

	wo.Status = string(StatusInProgress)
	wo.StartedAt = &now
	return nil
}

// Finish moves the order to done, stamps completed_at and freezes the final
// cost. finalCost falls back to the current estimate total when nil.
func Finish(wo *models.WorkOrder, now time.Time, finalCost *decimal.Decimal) error {
	if err := CanFinish(Status(wo.Status)); err != nil {
		return err
	}

	wo.Status = string(StatusDone)
	wo.CompletedAt = &now

	if wo.FinalCost == nil {
		switch {
		case finalCost != nil:
			c := money.Round(*finalCost)
			wo.FinalCost = &c
		case wo.EstTotal != nil:
			c := *wo.EstTotal
			wo.FinalCost = &c
		}
	}
	return nil
}

func Close(wo *models.WorkOrder) error {
	if err := CanClose(Status(wo.Status)); err != nil {
		return err
	}

	wo.Status = string(StatusClosed)
	return nil
}

// ApplyDecision routes a consumed customer decision: approve makes the order
// startable, reject sends it back to intake for re-estimation.
func ApplyDecision(wo *models.WorkOrder, decision string) error {
	switch decision {
	case models.DecisionApprove:
		wo.Status = string(StatusReadyToStart)
	case models.DecisionReject:
		wo.Status = string(StatusNew)
	default:
		return &TransitionError{Action: "decide", Required: StatusAwaitingApproval, Actual: Status(wo.Status)}
	}
	return nil
}

// SetEstimate updates the estimate operands and rederives est_total.
// Absent operands count as zero. Allowed in any state.
func SetEstimate(wo *models.WorkOrder, parts, labor *decimal.Decimal) {
	if parts != nil {
		p := money.Round(*parts)
		wo.EstParts = &p
	}
	if labor != nil {
		l := money.Round(*labor)
		wo.EstLabor = &l
	}

	total := money.Round(money.OrZero(wo.EstParts).Add(money.OrZero(wo.EstLabor)))
	wo.EstTotal = &total
}

// Schedule sets the planned date. Allowed in any state.
func Schedule(wo *models.WorkOrder, at time.Time) {
	wo.ScheduledAt = &at
}
