package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/strain-screen/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestUUIDWithPrefix() {
	id := idgen.NewUUID("sess").Generate()

	s.True(strings.HasPrefix(id, "sess_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "sess_"))
	s.NoError(err)
}

func (s *IDGenTestSuite) TestUUIDWithoutPrefix() {
	gen := idgen.NewUUID("")

	first := gen.Generate()
	second := gen.Generate()

	_, err := uuid.Parse(first)
	s.NoError(err)
	s.NotEqual(first, second)
}

func (s *IDGenTestSuite) TestSequential() {
	gen := idgen.NewSequential("sess")
	s.Equal("sess_1", gen.Generate())
	s.Equal("sess_2", gen.Generate())

	bare := idgen.NewSequential("")
	s.Equal("1", bare.Generate())
}
