package risk

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// =============================================================================
// Loss Distribution (closed variant: Normal | StudentT)
// =============================================================================

var (
	// ErrInvalidDistribution 지원하지 않는 분포 태그
	ErrInvalidDistribution = errors.New("unsupported distribution")
	// ErrMissingParameter Student-t에 자유도(nu)가 없을 때
	ErrMissingParameter = errors.New("missing distribution parameter")
	// ErrInvalidParameter 파라미터가 허용 범위를 벗어날 때 (예: CVaR에 nu <= 1)
	ErrInvalidParameter = errors.New("invalid distribution parameter")
)

type family int

const (
	familyNormal family = iota + 1
	familyStudentT
)

// Distribution 손실 분포
// ⭐ SSOT: 분포는 closed variant로만 생성 (Normal() / StudentT(nu)).
// 문자열 태그는 CLI/API 경계의 ParseDistribution에서만 해석
type Distribution struct {
	fam family
	nu  float64
}

// Normal 표준정규분포
func Normal() Distribution {
	return Distribution{fam: familyNormal}
}

// StudentT 자유도 nu의 Student-t 분포
func StudentT(nu float64) Distribution {
	return Distribution{fam: familyStudentT, nu: nu}
}

// ParseDistribution parses a distribution tag at the CLI/API boundary
// nu <= 0 은 "자유도 미지정"으로 해석
func ParseDistribution(tag string, nu float64) (Distribution, error) {
	switch strings.ToLower(tag) {
	case "normal", "gaussian":
		return Normal(), nil
	case "t", "student-t", "studentt":
		if nu <= 0 {
			return Distribution{}, fmt.Errorf("%w: Student-t requires degrees of freedom (nu)", ErrMissingParameter)
		}
		return StudentT(nu), nil
	default:
		return Distribution{}, fmt.Errorf("%w: %q", ErrInvalidDistribution, tag)
	}
}

// String returns a human-readable tag
func (d Distribution) String() string {
	switch d.fam {
	case familyNormal:
		return "normal"
	case familyStudentT:
		return fmt.Sprintf("t(nu=%g)", d.nu)
	default:
		return "invalid"
	}
}

// Nu returns the Student-t degrees of freedom (0 for normal)
func (d Distribution) Nu() float64 {
	return d.nu
}

// validate checks the distribution is usable
func (d Distribution) validate() error {
	switch d.fam {
	case familyNormal:
		return nil
	case familyStudentT:
		if d.nu <= 0 {
			return fmt.Errorf("%w: Student-t requires degrees of freedom (nu)", ErrMissingParameter)
		}
		return nil
	default:
		return fmt.Errorf("%w: zero-value Distribution", ErrInvalidDistribution)
	}
}

// Quantile 상위 꼬리 분위수 z = F⁻¹(alpha)
func (d Distribution) Quantile(alpha float64) (float64, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("%w: alpha must be in (0, 1), got %v", ErrInvalidParameter, alpha)
	}

	switch d.fam {
	case familyNormal:
		return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(alpha), nil
	default:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.nu}.Quantile(alpha), nil
	}
}

// Density 밀도 f(z)
func (d Distribution) Density(z float64) (float64, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}

	switch d.fam {
	case familyNormal:
		return distuv.Normal{Mu: 0, Sigma: 1}.Prob(z), nil
	default:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.nu}.Prob(z), nil
	}
}

// cvarFactor 단위 변동성당 CVaR 계수
//   - Normal:    φ(z) / (1-α)
//   - Student-t: f(z,ν)/(1-α) · (ν+z²)/(ν−1)   (ν > 1 필요)
func (d Distribution) cvarFactor(alpha float64) (float64, error) {
	z, err := d.Quantile(alpha)
	if err != nil {
		return 0, err
	}

	pdf, err := d.Density(z)
	if err != nil {
		return 0, err
	}

	switch d.fam {
	case familyNormal:
		return pdf / (1 - alpha), nil
	default:
		if d.nu <= 1 {
			return 0, fmt.Errorf("%w: Student-t CVaR requires nu > 1, got %g", ErrInvalidParameter, d.nu)
		}
		return (pdf / (1 - alpha)) * ((d.nu + z*z) / (d.nu - 1)), nil
	}
}
