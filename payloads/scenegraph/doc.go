// Package scenegraph decodes and encodes the battlefield map description
// ("BMD") payload: a fixed ordered sequence of ~30 named child lists
// describing everything placed on a battle map — buildings, capture
// points, lights, particle emitters, prefabs, deployment zones, and
// terrain decoration. See sections.go's SceneGraph doc comment for the
// wire contract.
package scenegraph
