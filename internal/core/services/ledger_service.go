package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

// defaultMaxCASAttempts bounds the read-compute-write retry loop of every
// balance mutation. Contention on a single user's balance is expected to be
// low, so no backoff is applied between attempts.
const defaultMaxCASAttempts = 5

// ledgerService is the ledger engine. It exclusively owns the
// invariant-preserving transitions between balances, audit entries and
// redemption grants; no other component writes any of the three.
//
// The balance store and the redemption registry cannot be committed together
// in one storage transaction, so Redeem composes their two atomic primitives
// (conditional balance write, guarded grant insert) and compensates the
// balance when the grant insert loses a race. Never losing a user's points to
// a denied redemption takes priority over strict serializability of the full
// operation.
type ledgerService struct {
	BaseService
	balanceRepo    portsrepo.BalanceRepositoryFacade
	auditRepo      portsrepo.AuditRepositoryFacade
	redemptionRepo portsrepo.RedemptionRepositoryFacade
	rewardMarkRepo portsrepo.RewardMarkRepository
	maxCASAttempts int
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithMaxCASAttempts overrides the default retry budget for conditional writes.
func WithMaxCASAttempts(attempts int) LedgerOption {
	return func(s *ledgerService) {
		if attempts > 0 {
			s.maxCASAttempts = attempts
		}
	}
}

// NewLedgerService creates the ledger engine with the provided options
func NewLedgerService(
	balanceRepo portsrepo.BalanceRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	redemptionRepo portsrepo.RedemptionRepositoryFacade,
	rewardMarkRepo portsrepo.RewardMarkRepository,
	options ...LedgerOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		balanceRepo:    balanceRepo,
		auditRepo:      auditRepo,
		redemptionRepo: redemptionRepo,
		rewardMarkRepo: rewardMarkRepo,
		maxCASAttempts: defaultMaxCASAttempts,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("user ID is required: %w", apperrors.ErrValidation)
	}
	return s.balanceRepo.GetBalance(ctx, userID)
}

func (s *ledgerService) AdjustManual(ctx context.Context, userID string, amount int64, reason, actorID string) (*domain.AuditEntry, error) {
	if userID == "" || actorID == "" {
		return nil, fmt.Errorf("user ID and actor ID are required: %w", apperrors.ErrValidation)
	}
	if reason == "" {
		return nil, fmt.Errorf("a reason is required for manual adjustments: %w", apperrors.ErrValidation)
	}

	for attempt := 0; attempt < s.maxCASAttempts; attempt++ {
		balance, err := s.balanceRepo.GetBalance(ctx, userID)
		if err != nil {
			return nil, err
		}

		newBalance := balance + amount
		if newBalance < 0 {
			s.LogWarn(ctx, "Manual adjustment would drive balance negative",
				slog.String("user_id", userID),
				slog.Int64("balance", balance),
				slog.Int64("amount", amount))
			return nil, fmt.Errorf("balance %d cannot absorb adjustment %d: %w", balance, amount, apperrors.ErrInsufficientBalance)
		}

		applied, err := s.balanceRepo.CompareAndSetBalance(ctx, userID, balance, newBalance)
		if err != nil {
			return nil, err
		}
		if !applied {
			// Another writer moved the balance; retry against the new value.
			s.LogDebug(ctx, "Balance CAS conflict on manual adjustment",
				slog.String("user_id", userID), slog.Int("attempt", attempt+1))
			continue
		}

		entry := domain.AuditEntry{
			AuditID:         uuid.NewString(),
			UserID:          userID,
			PreviousBalance: balance,
			NewBalance:      newBalance,
			ChangeAmount:    amount,
			ActionType:      domain.ActionManual,
			Reason:          reason,
			ActorID:         actorID,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.appendAudit(ctx, entry); err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Manual adjustment applied",
			slog.String("user_id", userID),
			slog.Int64("amount", amount),
			slog.Int64("new_balance", newBalance),
			slog.String("actor_id", actorID))
		return &entry, nil
	}

	return nil, fmt.Errorf("manual adjustment for user %s: %w", userID, apperrors.ErrConcurrencyExhausted)
}

func (s *ledgerService) RewardUpload(ctx context.Context, userID string, amount int64, uploadID string) (*domain.AuditEntry, error) {
	if userID == "" || uploadID == "" {
		return nil, fmt.Errorf("user ID and upload ID are required: %w", apperrors.ErrValidation)
	}
	if amount < 0 {
		return nil, fmt.Errorf("reward amount must not be negative: %w", apperrors.ErrValidation)
	}

	// Claim the upload before crediting so a retried trigger cannot credit
	// twice. The claim is released if the credit below never commits.
	claimed, err := s.rewardMarkRepo.MarkRewardedIfAbsent(ctx, uploadID, userID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		s.LogWarn(ctx, "Duplicate reward trigger ignored",
			slog.String("user_id", userID), slog.String("upload_id", uploadID))
		return nil, fmt.Errorf("upload %s: %w", uploadID, apperrors.ErrAlreadyRewarded)
	}

	for attempt := 0; attempt < s.maxCASAttempts; attempt++ {
		balance, err := s.balanceRepo.GetBalance(ctx, userID)
		if err != nil {
			return nil, s.releaseRewardClaim(ctx, uploadID, err)
		}

		newBalance := balance + amount
		applied, err := s.balanceRepo.CompareAndSetBalance(ctx, userID, balance, newBalance)
		if err != nil {
			return nil, s.releaseRewardClaim(ctx, uploadID, err)
		}
		if !applied {
			s.LogDebug(ctx, "Balance CAS conflict on upload reward",
				slog.String("user_id", userID), slog.Int("attempt", attempt+1))
			continue
		}

		entry := domain.AuditEntry{
			AuditID:         uuid.NewString(),
			UserID:          userID,
			PreviousBalance: balance,
			NewBalance:      newBalance,
			ChangeAmount:    amount,
			ActionType:      domain.ActionUploadReward,
			ActorID:         domain.SystemActorID,
			RelatedEntityID: uploadID,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.appendAudit(ctx, entry); err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Upload reward credited",
			slog.String("user_id", userID),
			slog.String("upload_id", uploadID),
			slog.Int64("amount", amount),
			slog.Int64("new_balance", newBalance))
		return &entry, nil
	}

	exhausted := fmt.Errorf("upload reward for user %s: %w", userID, apperrors.ErrConcurrencyExhausted)
	return nil, s.releaseRewardClaim(ctx, uploadID, exhausted)
}

func (s *ledgerService) Redeem(ctx context.Context, userID, documentID string, price int64) (*domain.RedemptionGrant, error) {
	if userID == "" || documentID == "" {
		return nil, fmt.Errorf("user ID and document ID are required: %w", apperrors.ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
	}

	for attempt := 0; attempt < s.maxCASAttempts; attempt++ {
		// The registry check restarts every retry: a concurrent redemption of
		// the same document by the same user may have committed since the
		// previous attempt.
		exists, err := s.redemptionRepo.GrantExists(ctx, userID, documentID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("document %s: %w", documentID, apperrors.ErrAlreadyRedeemed)
		}

		balance, err := s.balanceRepo.GetBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if balance < price {
			s.LogWarn(ctx, "Redemption denied for insufficient points",
				slog.String("user_id", userID),
				slog.String("document_id", documentID),
				slog.Int64("balance", balance),
				slog.Int64("price", price))
			return nil, fmt.Errorf("price %d exceeds balance %d: %w", price, balance, apperrors.ErrInsufficientPoints)
		}

		newBalance := balance - price
		applied, err := s.balanceRepo.CompareAndSetBalance(ctx, userID, balance, newBalance)
		if err != nil {
			return nil, err
		}
		if !applied {
			s.LogDebug(ctx, "Balance CAS conflict on redemption",
				slog.String("user_id", userID), slog.Int("attempt", attempt+1))
			continue
		}

		grant := domain.RedemptionGrant{
			UserID:          userID,
			DocumentID:      documentID,
			PointsPaid:      price,
			PreviousBalance: balance,
			NewBalance:      newBalance,
			CreatedAt:       time.Now().UTC(),
		}

		inserted, err := s.redemptionRepo.InsertGrantIfAbsent(ctx, grant)
		if err != nil {
			// The decrement committed but the grant state is unknown; refund
			// before surfacing the storage failure.
			if rbErr := s.refund(ctx, userID, price); rbErr != nil {
				return nil, s.rollbackFailure(ctx, userID, documentID, price, rbErr)
			}
			return nil, err
		}
		if !inserted {
			// A racing redemption of the same pair won between our balance
			// check and the insert: give the points back and report the pair
			// as already redeemed.
			if rbErr := s.refund(ctx, userID, price); rbErr != nil {
				return nil, s.rollbackFailure(ctx, userID, documentID, price, rbErr)
			}

			compensation := domain.AuditEntry{
				AuditID:         uuid.NewString(),
				UserID:          userID,
				PreviousBalance: balance,
				NewBalance:      balance,
				ChangeAmount:    0,
				ActionType:      domain.ActionRedemption,
				Reason:          "redemption rolled back: grant already held",
				ActorID:         domain.SystemActorID,
				RelatedEntityID: documentID,
				RolledBack:      true,
				CreatedAt:       time.Now().UTC(),
			}
			if err := s.appendAudit(ctx, compensation); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("document %s: %w", documentID, apperrors.ErrAlreadyRedeemed)
		}

		entry := domain.AuditEntry{
			AuditID:         uuid.NewString(),
			UserID:          userID,
			PreviousBalance: balance,
			NewBalance:      newBalance,
			ChangeAmount:    -price,
			ActionType:      domain.ActionRedemption,
			ActorID:         domain.SystemActorID,
			RelatedEntityID: documentID,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.appendAudit(ctx, entry); err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Document redeemed",
			slog.String("user_id", userID),
			slog.String("document_id", documentID),
			slog.Int64("price", price),
			slog.Int64("new_balance", newBalance))
		return &grant, nil
	}

	return nil, fmt.Errorf("redemption of document %s for user %s: %w", documentID, userID, apperrors.ErrConcurrencyExhausted)
}

// refund adds amount back to the user's balance with the same CAS discipline
// as every other mutation. It writes no audit entry itself; callers append the
// entry that describes why the refund happened.
func (s *ledgerService) refund(ctx context.Context, userID string, amount int64) error {
	for attempt := 0; attempt < s.maxCASAttempts; attempt++ {
		balance, err := s.balanceRepo.GetBalance(ctx, userID)
		if err != nil {
			return err
		}
		applied, err := s.balanceRepo.CompareAndSetBalance(ctx, userID, balance, balance+amount)
		if err != nil {
			return err
		}
		if applied {
			return nil
		}
	}
	return fmt.Errorf("refund of %d points for user %s: %w", amount, userID, apperrors.ErrConcurrencyExhausted)
}

// rollbackFailure surfaces a failed compensation. This is the one path with no
// automatic recovery: the log line carries everything an operator needs to
// reconcile the balance by hand.
func (s *ledgerService) rollbackFailure(ctx context.Context, userID, documentID string, price int64, cause error) error {
	s.LogError(ctx, cause, "Compensating refund failed; balance requires manual reconciliation",
		slog.String("user_id", userID),
		slog.String("document_id", documentID),
		slog.Int64("points_to_restore", price))
	return fmt.Errorf("refund of %d points for user %s after losing grant race on document %s: %w",
		price, userID, documentID, apperrors.ErrRollbackFailed)
}

// releaseRewardClaim undoes an unused reward mark and returns cause, or
// escalates to ErrRollbackFailed when even the release fails.
func (s *ledgerService) releaseRewardClaim(ctx context.Context, uploadID string, cause error) error {
	if err := s.rewardMarkRepo.ReleaseRewardMark(ctx, uploadID); err != nil {
		s.LogError(ctx, err, "Failed to release reward mark after uncommitted credit; upload requires manual reconciliation",
			slog.String("upload_id", uploadID))
		return fmt.Errorf("releasing reward mark for upload %s: %w", uploadID, apperrors.ErrRollbackFailed)
	}
	return cause
}

// appendAudit persists an audit entry for a balance change that has already
// committed. A failure here leaves a committed balance without its entry, so
// it is logged loudly before being returned.
func (s *ledgerService) appendAudit(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.auditRepo.AppendEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Audit append failed after committed balance change; manual reconciliation required",
			slog.String("user_id", entry.UserID),
			slog.Int64("previous_balance", entry.PreviousBalance),
			slog.Int64("new_balance", entry.NewBalance),
			slog.String("action_type", string(entry.ActionType)))
		return err
	}
	return nil
}
