/*
Package ladder builds the visual form of a rung: elements placed on a fixed
width grid with explicit power-flow connections.

# Grid model

The boundary between columns c-1 and c on row r is a point P(r,c). An element
at (r,c) that declares Left conducts from P(r,c) to P(r,c+1) when its condition
holds. Down on (r,c) paired with Up on (r+1,c) joins the right edges of both
cells, merging P(r,c+1) and P(r+1,c+1). Every P(r,0) touches the left power
rail. Coils and operations sit in the terminal column (width-1) so that all
outputs line up on the right rail regardless of how many contacts precede them.

# Finalization

Finalize closes the topology in one pass: every declared connection must be
reciprocated, row 0 must carry a path from the left rail to an output element,
every output must be reachable, and the contact network feeding each group of
outputs must reduce to a series-parallel expression. The reduced networks are
stored on the Graph and are the only input of the instruction-list linearizer,
so the visual and linear forms cannot drift apart.
*/
package ladder
