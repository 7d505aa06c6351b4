// Package component binds the behavior objects to entities. Components hold
// pointers to the per-agent state owned by the ai, combat and rage packages;
// systems tick them.
package component
