package molecule

import (
	"context"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// Interpretation is the result of reading one structure string.
type Interpretation struct {
	Molecule    *Molecule
	Descriptors Descriptors
}

// Interpreter is the capability the candidate evaluator consumes: read a
// structure string into descriptors, and render a depiction of it.
type Interpreter interface {
	Interpret(ctx context.Context, smiles string) (*Interpretation, error)
	Depict(ctx context.Context, mol *Molecule, size int) ([]byte, error)
}

// Service implements Interpreter on top of the SMILES parser, a descriptor
// Calculator and the PNG renderer.
type Service struct {
	calc   Calculator
	logger logging.Logger
}

// NewService constructs a molecule service.  A nil calculator selects the
// default one; a nil logger discards output.
func NewService(calc Calculator, logger logging.Logger) *Service {
	if calc == nil {
		calc = NewCalculator()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{calc: calc, logger: logger.Named("molecule")}
}

// Interpret parses smiles and computes its descriptors.  Parse failures are
// returned as CodeInvalidSMILES errors.
func (s *Service) Interpret(ctx context.Context, smiles string) (*Interpretation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mol, err := ParseSMILES(smiles)
	if err != nil {
		s.logger.Debug("structure not interpretable",
			logging.String("smiles", smiles),
			logging.Err(err))
		return nil, err
	}
	desc, err := s.calc.Compute(mol)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidSMILES, "descriptor calculation failed")
	}
	return &Interpretation{Molecule: mol, Descriptors: desc}, nil
}

// Depict renders mol as a size×size PNG.
func (s *Service) Depict(ctx context.Context, mol *Molecule, size int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	png, err := Depict(mol, size)
	if err != nil {
		s.logger.Warn("depiction failed", logging.String("smiles", smilesOf(mol)), logging.Err(err))
		return nil, err
	}
	return png, nil
}

func smilesOf(m *Molecule) string {
	if m == nil {
		return ""
	}
	return m.SMILES
}

var _ Interpreter = (*Service)(nil)

//Personal.AI order the ending
