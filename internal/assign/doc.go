// Package assign owns the working mapping from imported records to enrolled
// people during one review session.
//
// The mapping is bijective on the assigned subset: a person can be claimed by
// at most one record at a time. Selecting a person who is already claimed
// silently steals the assignment from the prior record instead of erroring,
// mirroring what a reviewer expects when they reassign someone. The caller
// owns the Resolver instance; nothing here touches storage.
package assign
