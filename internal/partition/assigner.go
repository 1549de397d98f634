package partition

import (
	"github.com/sirupsen/logrus"

	"github.com/dreamware/graphpart/internal/block"
)

// epsilon is the strict-inequality guard used when comparing CE×BS products,
// matching the reference implementation's 1e-6 tie-break threshold.
const epsilon = 1e-6

// Coefficients holds the three normalized per-partition capacity budgets fed
// into the balance score: AlphaC = α·|Train|/N, BetaC = β·|Val|/N,
// GammaC = γ·|Test|/N.
type Coefficients struct {
	AlphaC float64
	BetaC  float64
	GammaC float64

	// FixValCoefficient opts into weighting the validation term of the
	// balance score by BetaC instead of AlphaC. The reference implementation
	// weights both train and val by the train coefficient; this flag is off
	// by default to preserve that reference behavior, and documented for
	// anyone who wants the "intended" reading instead (see DESIGN.md).
	FixValCoefficient bool
}

// NewCoefficients scales the user's role-weight inputs by the role-set sizes
// and partition count.
func NewCoefficients(alpha, beta, gamma float64, trainN, valN, testN, partitionN int) Coefficients {
	n := float64(partitionN)
	return Coefficients{
		AlphaC: alpha * float64(trainN) / n,
		BetaC:  beta * float64(valN) / n,
		GammaC: gamma * float64(testN) / n,
	}
}

// balanceScore computes BS[j] for a candidate partition.
func (c Coefficients) balanceScore(p *Aggregator) float64 {
	valCoeff := c.AlphaC
	if c.FixValCoefficient {
		valCoeff = c.BetaC
	}
	return 1 - c.AlphaC*float64(p.TrainSize()) - valCoeff*float64(p.ValSize()) - c.GammaC*float64(p.TestSize())
}

// Assign greedily places each block, in the order given (block.Builder.Build
// returns them largest first; Assign does not sort), into the partition
// maximizing CE[j]·BS[j], ties broken by lowest index with an epsilon guard.
// Processing largest blocks first prevents pathological fragmentation of the
// biggest neighborhood communities, since later, smaller blocks have less
// power to disturb an already-settled balance.
func Assign(blocks []*block.Block, partitionCount int, coeff Coefficients, logger *logrus.Logger) []*Aggregator {
	partitions := make([]*Aggregator, partitionCount)
	for i := range partitions {
		partitions[i] = NewAggregator()
	}

	ce := make([]float64, partitionCount)
	bs := make([]float64, partitionCount)

	for i, b := range blocks {
		for j, p := range partitions {
			if p.NodeSize() > 0 {
				ce[j] = float64(p.CrossEdge(b)) / float64(p.NodeSize())
			} else {
				ce[j] = 0
			}
			bs[j] = coeff.balanceScore(p)
		}

		best := 0
		for j := 1; j < partitionCount; j++ {
			if ce[j]*bs[j] > ce[best]*bs[best]+epsilon {
				best = j
			}
		}

		partitions[best].AddBlock(b)

		if logger != nil {
			logger.WithFields(logrus.Fields{
				"component":   "partition",
				"block_index": i,
				"block_owner": b.Owner,
				"block_nodes": b.NodeSize(),
				"partition":   best,
			}).Debug("placed block")
		}
	}

	return partitions
}
