// Package elements provides a small set of concrete elements.
//
// [Box] and [Label] back native views; [Row], [Column], [Overlay], [Inset],
// [Opacity], [Transformed], [Hidden] and [Spacer] only contribute layout and fold into
// the nearest view-backed descendants. [EnvironmentReader] and
// [AdaptedEnvironment] read and adapt the environment for a subtree.
//
// Building a small tree:
//
//	root := elements.Column{
//	    Spacing:      8,
//	    MainAxisSize: elements.MainAxisSizeMax,
//	    Children: []elements.StackChild{
//	        elements.Keyed("title", elements.Label{Text: "Settings"}),
//	        elements.Expanded(1, elements.Box{BackgroundColor: "#eeeeee"}),
//	    },
//	}
package elements
