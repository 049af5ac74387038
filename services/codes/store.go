package codes

import (
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gopkg.in/reform.v1"

	"github.com/gebv/bcpay"
)

// Store is satisfied by *PGStore.
type Store interface {
	List(table, search string) ([]*Code, error)
	Get(table, code string) (*Code, error)
	Create(table string, c *Code) (*Code, error)
	UpdateDescription(table, code string, c *Code) (*Code, error)
	Delete(table, code string) error
}

type PGStore struct {
	DB *reform.DB
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func lookup(table string) (*Table, error) {
	t, ok := Tables[table]
	if !ok {
		return nil, errors.Wrapf(bcpay.ErrNotFound, "code table %q", table)
	}
	return t, nil
}

// List сортировка по code, search ищет подстроку в code и description без учета регистра.
func (s *PGStore) List(table, search string) ([]*Code, error) {
	t, err := lookup(table)
	if err != nil {
		return nil, err
	}
	var structs []reform.Struct
	if search = strings.TrimSpace(search); search != "" {
		structs, err = s.DB.SelectAllFrom(t,
			"WHERE code ILIKE $1 OR description ILIKE $1 ORDER BY code",
			"%"+likeEscaper.Replace(search)+"%",
		)
	} else {
		structs, err = s.DB.SelectAllFrom(t, "ORDER BY code")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Failed list %s", table)
	}
	out := make([]*Code, 0, len(structs))
	for _, str := range structs {
		out = append(out, str.(*Code))
	}
	return out, nil
}

func (s *PGStore) Get(table, code string) (*Code, error) {
	t, err := lookup(table)
	if err != nil {
		return nil, err
	}
	c := NewCode(t, "", "")
	if err := s.DB.FindByPrimaryKeyTo(c, code); err != nil {
		if err == reform.ErrNoRows {
			return nil, bcpay.ErrNotFound
		}
		return nil, errors.Wrapf(err, "Failed get %s", table)
	}
	return c, nil
}

func (s *PGStore) Create(table string, in *Code) (*Code, error) {
	t, err := lookup(table)
	if err != nil {
		return nil, err
	}
	c := NewCode(t, strings.TrimSpace(in.Code), in.Description)
	if c.Code == "" {
		return nil, errors.Wrap(bcpay.ErrInvalidRequest, "code is required")
	}
	if err := s.DB.Insert(c); err != nil {
		return nil, insertErr(table, err)
	}
	return c, nil
}

// unique_violation
const pqUniqueViolation = "23505"

func insertErr(table string, err error) error {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
		return bcpay.ErrCodeExists
	}
	return errors.Wrapf(err, "Failed insert %s", table)
}

// UpdateDescription code менять нельзя, только описание.
func (s *PGStore) UpdateDescription(table, code string, in *Code) (*Code, error) {
	if in.Code != "" && in.Code != code {
		return nil, bcpay.ErrCodeReadOnly
	}
	c, err := s.Get(table, code)
	if err != nil {
		return nil, err
	}
	c.Description = in.Description
	if err := s.DB.Update(c); err != nil {
		return nil, errors.Wrapf(err, "Failed update %s", table)
	}
	return c, nil
}

func (s *PGStore) Delete(table, code string) error {
	t, err := lookup(table)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(NewCode(t, code, "")); err != nil {
		if err == reform.ErrNoRows {
			return bcpay.ErrNotFound
		}
		return errors.Wrapf(err, "Failed delete %s", table)
	}
	return nil
}

var _ Store = (*PGStore)(nil)
