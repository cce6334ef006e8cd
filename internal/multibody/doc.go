// Package multibody holds the kinematic tree of an articulated mechanism and the
// workspace the dynamics algorithms compute into.
//
// A [Model] is built once with a [Builder] and never modified afterwards. Joint 0
// is the universe: it has no degrees of freedom and every other joint has a
// parent with a strictly smaller index. Joints are numbered depth-first, so the
// velocity coordinates of any subtree form one contiguous range.
//
// A [Data] is the mutable workspace of one caller. It is sized once for a model
// by [NewData] and reused across calls; the algorithms never allocate into it
// afterwards. A Data must not be shared by concurrent calls: use one Data per
// goroutine.
package multibody
