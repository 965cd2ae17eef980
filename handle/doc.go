// Package handle exposes tess through opaque, generational identifiers.
//
// A Store owns every builder, path, geometry and error message it creates.
// Callers hold plain integer handles instead of pointers, which suits
// bindings to other languages and long-lived registries. The lifecycle
// mirrors a C ABI:
//
//	s := handle.NewStore()
//	b := s.CreateBuilder(0)
//	s.Begin(b, handle.InputVertex{Position: [2]float32{0, 0}})
//	s.LineTo(b, handle.InputVertex{Position: [2]float32{100, 0}})
//	s.LineTo(b, handle.InputVertex{Position: [2]float32{100, 100}})
//	s.Close(b)
//	p := s.Build(b) // b is consumed
//
//	var msg handle.MessageHandle
//	g := s.TessellateFill16(p, handle.FillOptionsRecord{}, &msg)
//	switch {
//	case g != 0:
//		draw(s.Vertices(g), s.Indices16(g))
//		s.FreeGeometry(g)
//	case msg == 0:
//		// Too many vertices for 16-bit indices: retry with TessellateFill32.
//	default:
//		log.Print(s.Message(msg))
//		s.FreeMessage(msg)
//	}
//	s.FreePath(p)
//
// Passing a zero, freed or consumed handle is a caller bug and panics.
// A Store is safe for concurrent use.
package handle
