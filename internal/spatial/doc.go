// Package spatial provides 6D spatial vector algebra for rigid-body dynamics.
//
// All types are generic over a floating point [Scalar]:
//
//   - [Vec3], [Mat3]: 3D vectors and matrices
//   - [Motion]: spatial velocity or acceleration (linear, angular)
//   - [Force]: spatial force (linear force, moment)
//   - [SE3]: rigid transform mapping coordinates of a child frame into its parent
//   - [Inertia]: spatial inertia of a single rigid body (mass, center of mass, rotational inertia)
//   - [Matrix6]: dense 6x6 operator, used for composite and time-varying inertias
//
// Six-vectors are laid out linear part first, angular part second. Values are
// passed and returned by value; nothing in this package allocates.
//
// # Frame actions
//
// For a transform aMb, Act* maps quantities expressed in b into a and ActInv*
// maps quantities expressed in a into b:
//
//	va := aMb.ActMotion(vb)
//	fb := aMb.ActInvForce(fa)
package spatial
