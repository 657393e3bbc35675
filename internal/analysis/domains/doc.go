// Package domains holds the analyses shipped with fileflow. Each one is a
// dataflow.Domain over the flow points of a file system script, where the
// text of a flow point is a single command such as "mkdir out".
package domains
