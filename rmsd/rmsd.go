package rmsd

import (
	"fmt"
	"math"

	"github.com/BurntSushi/dockgo/space"

	matrix "github.com/skelterjohn/go.matrix"
)

// RMSD implements a version of the Kabsch alogrithm that is described here:
// http://cnx.org/content/m11608/latest/
//
// A brief, high-level overview:
//
// Build the 3xN matrices X and Y containing, for the sets x and y
// respectively, the coordinates for each of the N points after centering
// the points by subtracting the centroids.
//
// Compute the covariance matrix C=X(Y^T)
//
// Compute the SVD (Singular Value Decomposition) of C=US(V^T)
//
// Compute d=sign(det(V(U^T)))
//
// Compute the optimal rotation R as R = V([1 0 0] [0 1 0] [0 0 d])(U^T)
//
// Neither point set is modified. An error is returned if the sets have
// different lengths or are empty.
func RMSD(struct1, struct2 *space.Points) (float64, error) {
	if err := checkPaired(struct1, struct2); err != nil {
		return 0, err
	}

	// In order to "center" the coordinates, we subtract the centroid of
	// each set of points. Center works in place, so do it on copies.
	x, y := struct1.Clone(), struct2.Clone()
	x.Center()
	y.Center()
	X := x.Matrix().Transpose()
	Y := y.Matrix().Transpose()

	// Compute the covariance matrix C = X(Y^T)
	C := must(X.TimesDense(Y.Transpose()))

	// Compute the Singular Value Decomposition of C = US(V^T)
	U, _, V, err := C.SVD()
	if err != nil {
		return 0, fmt.Errorf("rmsd: could not decompose covariance matrix: %s",
			err)
	}

	// If V(U^T) is a reflection rather than a rotation, flip the axis
	// belonging to the smallest singular value. This makes the rotation
	// "proper".
	UT := U.Transpose()
	d := 1.0
	if det3(must(V.TimesDense(UT))) < 0 {
		d = -1.0
	}
	adjust := matrix.MakeDenseMatrix([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, d,
	}, 3, 3)
	R := must(must(V.TimesDense(adjust)).TimesDense(UT))

	// Apply the rotation R to X to get the best possible alignment with Y,
	// then measure what is left.
	Xbest := must(R.TimesDense(X))
	var sum, dist float64
	for r := 0; r < 3; r++ {
		for c := 0; c < X.Cols(); c++ {
			dist = Xbest.Get(r, c) - Y.Get(r, c)
			sum += dist * dist
		}
	}
	return math.Sqrt(sum / float64(struct1.Len())), nil
}

// Raw computes the RMSD between two paired point sets without superimposing
// them first.
func Raw(struct1, struct2 *space.Points) (float64, error) {
	if err := checkPaired(struct1, struct2); err != nil {
		return 0, err
	}
	diff, err := struct1.Sub(struct2)
	if err != nil {
		return 0, err
	}
	var sum float64
	for r := 0; r < diff.Rows(); r++ {
		for c := 0; c < 3; c++ {
			sum += diff.Get(r, c) * diff.Get(r, c)
		}
	}
	return math.Sqrt(sum / float64(struct1.Len())), nil
}

func checkPaired(struct1, struct2 *space.Points) error {
	if struct1.Len() != struct2.Len() {
		return fmt.Errorf("rmsd: computing the RMSD of two structures "+
			"requires that they have equal length, but the lengths of the "+
			"two structures provided are %d and %d",
			struct1.Len(), struct2.Len())
	}
	if struct1.Len() == 0 {
		return fmt.Errorf("rmsd: cannot compute the RMSD of empty structures")
	}
	return nil
}

func det3(A *matrix.DenseMatrix) float64 {
	return A.Get(0, 0)*(A.Get(1, 1)*A.Get(2, 2)-A.Get(1, 2)*A.Get(2, 1)) -
		A.Get(0, 1)*(A.Get(1, 0)*A.Get(2, 2)-A.Get(1, 2)*A.Get(2, 0)) +
		A.Get(0, 2)*(A.Get(1, 0)*A.Get(2, 1)-A.Get(1, 1)*A.Get(2, 0))
}

// must panics if the result of a dense matrix operation returns an error.
// Every product here is between matrices whose shapes are known to agree.
func must(A *matrix.DenseMatrix, err error) *matrix.DenseMatrix {
	if err != nil {
		panic(err)
	}
	return A
}
