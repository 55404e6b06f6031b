// Package topicmgr keeps the catalogue of message bus topics used by the
// application. Topics are declared once, next to the code that publishes them,
// and registered with a Manager so that tooling can list and validate them.
//
// Framework topics belong to core services:
//
//	var StateChanged = topicmgr.DefineFramework(topicmgr.TopicConfig{
//		Name:        "auth.state.changed",
//		Description: "Published when a browser session signs in or out",
//		Pattern:     "auth.state.changed",
//	})
//
// Module topics belong to a feature package and name it in Module:
//
//	var EntryLogged = topicmgr.DefineModule(topicmgr.TopicConfig{
//		Name:   "study.history.logged",
//		Module: "study",
//		...
//	})
package topicmgr
