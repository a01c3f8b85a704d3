// Package lsystem implements a deterministic, context-free L-system
// (Lindenmayer system) string rewriter.
//
// # Overview
//
// An L-system starts from an axiom and an ordered list of production rules.
// Each generation (rewrite pass) walks the current string left to right and
// replaces every symbol that matches a rule with that rule's replacement.
// Symbols without a rule are copied through unchanged.
//
//	rules := lsystem.Rules{
//	    {Match: 'A', Replacement: "-BF+AFA+FB-"},
//	    {Match: 'B', Replacement: "+AF-BFB-FA+"},
//	}
//	s := lsystem.Generate("A", rules, 2)
//
// # Rule Order
//
// Matching is first-match-wins in rule order. When two rules share a match
// symbol, only the first one ever fires; [Rules.Shadowed] reports the others.
//
// # Cost
//
// [Generate] materializes every intermediate string, so its cost is the total
// output length across all generations. For expansive rule sets this grows
// exponentially with the generation count. [GenerateContext] adds
// cancellation and a length limit, and [Expander] streams the final
// generation symbol by symbol without building it.
//
// # Generation State
//
// [Generation] tracks an evolving string together with a cursor into it, for
// drivers that expand on a trigger and walk the result one symbol at a time.
package lsystem
