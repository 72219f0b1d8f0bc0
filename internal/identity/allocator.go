package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	identityerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/identity/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const EmailDomain = "lamas.com"

// allocateAttempts bounds the retry loop when two concurrent registrations
// race for the same base. The unique index on email is the real guard; the
// retry just turns a constraint violation into the next free suffix.
const allocateAttempts = 3

// Allocator issues corporate emails of the form
// firstname.paternalsurname@lamas.com, with a numeric suffix once the bare
// base is taken. Collisions are resolved from the issued-identities ledger,
// never recycled: a suffix once used stays burned even if the worker leaves.
type Allocator struct {
	repo   Repository
	logger *zap.Logger
}

func NewAllocator(repo Repository, logger ...*zap.Logger) *Allocator {
	l := zap.L().Named("identity.allocator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.allocator")
	}
	return &Allocator{repo: repo, logger: l}
}

// Allocate reserves the next free corporate email for the worker and records
// it in the ledger. Must run inside the caller's transaction.
func (a *Allocator) Allocate(ctx context.Context, tx *sql.Tx, workerID uuid.UUID, firstNames, paternalSurname string) (string, error) {
	base, err := BuildBase(firstNames, paternalSurname)
	if err != nil {
		return "", err
	}

	qtx := a.repo.WithTx(tx)

	for attempt := 0; attempt < allocateAttempts; attempt++ {
		suffix, err := qtx.NextSuffix(ctx, base)
		if err != nil {
			return "", err
		}

		email := EmailForBase(base, suffix)
		issued := &IssuedIdentity{
			ID:       uuid.New(),
			WorkerID: workerID,
			Email:    email,
			Base:     base,
			Suffix:   suffix,
		}

		if err := qtx.Record(ctx, issued); err != nil {
			if isUniqueViolation(err) {
				a.logger.Warn("email allocation collision, retrying",
					zap.String("base", base),
					zap.Int("suffix", suffix),
				)
				continue
			}
			return "", err
		}

		a.logger.Info("corporate email issued",
			zap.String("worker_id", workerID.String()),
			zap.String("email", email),
		)
		return email, nil
	}

	return "", identityerrors.ErrEmailConflict
}

// BuildBase derives the email local part: the first given name and the
// paternal surname, lowercased, diacritics stripped, letters only.
func BuildBase(firstNames, paternalSurname string) (string, error) {
	first := normalizeNamePart(firstWord(firstNames))
	surname := normalizeNamePart(paternalSurname)

	if first == "" || surname == "" {
		return "", identityerrors.ErrEmptyNameParts
	}

	return first + "." + surname, nil
}

func EmailForBase(base string, suffix int) string {
	if suffix == 0 {
		return base + "@" + EmailDomain
	}
	return fmt.Sprintf("%s%d@%s", base, suffix, EmailDomain)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// normalizeNamePart lowercases, decomposes (NFD), drops combining marks and
// anything that is not a plain letter. "Ñuñez" becomes "nunez".
func normalizeNamePart(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		normalized = strings.ToLower(strings.TrimSpace(s))
	}

	var b strings.Builder
	for _, r := range normalized {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
