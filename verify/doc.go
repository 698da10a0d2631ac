/*
Package verify implements the age-verification workflow engine.

The engine receives inbound platform events (verify request, proof
submission, accept, decline), decides state transitions for the target user,
and issues outbound actions (replies, direct messages, review posts, role
assignment) through a collaborator interface. All per-user workflow state
lives behind the statestore.StateStore abstraction.
*/
package verify
