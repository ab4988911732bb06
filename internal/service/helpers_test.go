package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/obscuralabs/blind-payroll/internal/engine"
	"github.com/obscuralabs/blind-payroll/internal/engine/acl"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/payroll"
	"github.com/obscuralabs/blind-payroll/internal/tax"
	"github.com/obscuralabs/blind-payroll/internal/tiers"
	"github.com/obscuralabs/blind-payroll/models"
)

const testEngineKey = "service-test-key"

// coreFixture assembles the real payroll core over the in-memory engine so
// service tests exercise genuine ciphertext flows; only the persistence
// seams stay mocked.
type coreFixture struct {
	eng         *engine.MemEngine
	producer    *acl.Producer
	claims      *tiers.Claims
	coordinator *payroll.Coordinator
}

func newCoreFixture(t *testing.T, frequency time.Duration) *coreFixture {
	t.Helper()
	ctx := context.Background()

	eng := engine.NewMemEngine([]byte(testEngineKey), logger.Nop())
	producer := acl.NewProducer(eng, models.PrincipalCoordinator, nil, logger.Nop())
	evaluator, err := tax.NewEvaluator(ctx, eng, models.DefaultBracketSchedule(), logger.Nop())
	require.NoError(t, err)
	table, err := tiers.NewTable(ctx, eng, models.DefaultTierCaps(), logger.Nop())
	require.NoError(t, err)
	claims, err := tiers.NewClaims(eng)
	require.NoError(t, err)

	coordinator := payroll.NewCoordinator(payroll.NewRegistry(), eng, producer, evaluator, table, frequency, logger.Nop())

	return &coreFixture{
		eng:         eng,
		producer:    producer,
		claims:      claims,
		coordinator: coordinator,
	}
}

// granted encrypts v and grants it to the coordinator plus extras.
func (f *coreFixture) granted(t *testing.T, v models.Micro, extra ...models.Principal) models.EncryptedAmount {
	t.Helper()
	ctx := context.Background()

	out, err := f.eng.EncryptConstant(ctx, v)
	require.NoError(t, err)
	for _, p := range append([]models.Principal{models.PrincipalCoordinator}, extra...) {
		require.NoError(t, f.eng.GrantAccess(ctx, out.Handle, p))
	}

	return out
}

// enroll admits a granted base value directly through the coordinator,
// bypassing the input-proof path the item service adds on top.
func (f *coreFixture) enroll(t *testing.T, subjectID int64, tier uint64, active bool, base models.Micro) models.Item {
	t.Helper()

	amount := f.granted(t, base, models.SubjectPrincipal(subjectID))
	item, err := f.coordinator.EnrollItem(context.Background(), subjectID, "staff", tier, active, amount)
	require.NoError(t, err)

	return item
}

func (f *coreFixture) decryptAs(t *testing.T, h models.HandleID, p models.Principal) models.Micro {
	t.Helper()

	v, err := f.eng.Decrypt(context.Background(), h, p)
	require.NoError(t, err)

	return v
}

// sealedInput packages value the way an operator's encryption tooling would,
// bound to the given sender.
func sealedInput(value models.Micro, sender models.Principal) models.EncryptedInput {
	return engine.SealInput([]byte(testEngineKey), value, sender)
}
