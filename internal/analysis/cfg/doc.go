// # Description
//
// Package cfg provides the control flow graph used by the fileflow analyzer.
//
// ## Control Flow Graph (CFG)
//
// A CFG is a representation, using graph notation, of all paths that might be traversed
// through a script during its execution. In this package:
//
//   - Each node is a FlowPoint, one control-flow relevant construct of the script.
//   - The directed edges (Edge) mean "control may pass from source to target".
//
// A flow point may have any number of incoming edges and zero, one or two
// outgoing edges: sequential flow uses one, a binary branch uses two (the
// first outgoing edge is the "then" branch), a terminal node has none.
// The scripting language has no switch statement, so there is no multi-way
// fan-out. The core does not enforce this limit; it is a contract for the
// code that builds the graph.
//
// ## Package Functionality
//
//  1. Graph construction: create flow points with Graph.NewFlowPoint and link
//     them with FlowPoint.AddFlowPoint.
//  2. Traversal: AllFlowPoints, Print, PrintDot and Reset walk every flow point
//     reachable through outgoing edges, correctly in the presence of cycles.
//  3. Analysis bookkeeping: typed keys (NewKey) store a current and an original
//     value per analysis domain at each flow point.
package cfg
