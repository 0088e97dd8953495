// Package testgfx provides a software stand-in for a GL context so the
// pipeline setup can be tested without a display or a driver.
package testgfx

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"j4k.co/cube"
)

// DrawCall is one captured DrawElements call together with the state it
// was issued against.
type DrawCall struct {
	Mode        cube.Enum
	Count       int32
	Type        cube.Enum
	Offset      uintptr
	Program     uint32
	VertexArray uint32
	Elements    uint32
}

// ClearCall is one captured Clear call.
type ClearCall struct {
	Mask  cube.Enum
	Color [4]float32
}

type decl struct {
	qualifier string
	typ       string
	name      string
	location  int
}

type shader struct {
	typ      cube.Enum
	source   string
	compiled bool
	log      string
	decls    []decl
}

type program struct {
	attached []uint32
	linked   bool
	log      string

	attribs      map[string]int32
	uniforms     map[string]int32
	uniformTypes map[int32]string
	values       map[int32][]float32
}

type attribState struct {
	enabled bool
	buffer  uint32
	size    int32
	typ     cube.Enum
	stride  int32
	offset  uintptr
}

type vertexArray struct {
	attribs  map[uint32]*attribState
	elements uint32
}

// Context implements cube.Context in memory. Shader sources are scanned for
// declarations rather than compiled; a source fails to compile when it has no
// main function, unbalanced braces, or an #error directive.
type Context struct {
	next uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	buffers  map[uint32][]byte
	arrays   map[uint32]*vertexArray

	program     uint32
	vertexArray uint32
	arrayBuffer uint32

	clearColor [4]float32
	viewport   [4]int32

	calls  []string
	draws  []DrawCall
	clears []ClearCall
	errs   []string
}

var _ cube.Context = (*Context)(nil)

func New() *Context {
	return &Context{
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		buffers:  make(map[uint32][]byte),
		arrays:   map[uint32]*vertexArray{0: newVertexArray()},
	}
}

func newVertexArray() *vertexArray {
	return &vertexArray{attribs: make(map[uint32]*attribState)}
}

func (c *Context) call(name string) {
	c.calls = append(c.calls, name)
}

func (c *Context) fail(format string, args ...interface{}) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

func (c *Context) name() uint32 {
	c.next++
	return c.next
}

// Calls returns the names of the methods called so far, in order.
func (c *Context) Calls() []string {
	return append([]string(nil), c.calls...)
}

// Errors returns the GL errors raised so far. A correct caller produces none.
func (c *Context) Errors() []string {
	return append([]string(nil), c.errs...)
}

func (c *Context) Draws() []DrawCall {
	return append([]DrawCall(nil), c.draws...)
}

func (c *Context) Clears() []ClearCall {
	return append([]ClearCall(nil), c.clears...)
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.call("Viewport")
	c.viewport = [4]int32{x, y, width, height}
}

// CurrentProgram returns the program in use.
func (c *Context) CurrentProgram() uint32 {
	return c.program
}

// CurrentVertexArray returns the bound vertex array, 0 for none.
func (c *Context) CurrentVertexArray() uint32 {
	return c.vertexArray
}

// ViewportRect returns the last viewport set.
func (c *Context) ViewportRect() [4]int32 {
	return c.viewport
}

// Live returns the number of shader, program, buffer and vertex array
// objects that have not been deleted.
func (c *Context) Live() int {
	return len(c.shaders) + len(c.programs) + len(c.buffers) + len(c.arrays) - 1
}

var (
	declRE    = regexp.MustCompile(`^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(in|out|attribute|varying|uniform)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)
	mainRE    = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	errorRE   = regexp.MustCompile(`^\s*#error\b(.*)$`)
	versionRE = regexp.MustCompile(`^\s*#version\b`)
)

func (c *Context) CreateShader(typ cube.Enum) uint32 {
	c.call("CreateShader")
	if typ != cube.VertexShaderType && typ != cube.FragmentShaderType {
		c.fail("CreateShader: invalid enum %#x", uint32(typ))
		return 0
	}
	id := c.name()
	c.shaders[id] = &shader{typ: typ}
	return id
}

func (c *Context) ShaderSource(id uint32, src string) {
	c.call("ShaderSource")
	sh, ok := c.shaders[id]
	if !ok {
		c.fail("ShaderSource: no shader %d", id)
		return
	}
	sh.source = src
}

func (c *Context) CompileShader(id uint32) {
	c.call("CompileShader")
	sh, ok := c.shaders[id]
	if !ok {
		c.fail("CompileShader: no shader %d", id)
		return
	}
	sh.decls = nil
	sh.compiled = false
	var logs []string
	lines := strings.Split(sh.source, "\n")
	depth := 0
	for i, line := range lines {
		if i > 0 && versionRE.MatchString(line) {
			logs = append(logs, fmt.Sprintf("ERROR: 0:%d: '#version' : must occur first in shader", i+1))
		}
		if m := errorRE.FindStringSubmatch(line); m != nil {
			logs = append(logs, fmt.Sprintf("ERROR: 0:%d: '#error' :%s", i+1, m[1]))
		}
		if m := declRE.FindStringSubmatch(line); m != nil && depth == 0 {
			loc := -1
			if m[1] != "" {
				loc, _ = strconv.Atoi(m[1])
			}
			sh.decls = append(sh.decls, decl{qualifier: m[2], typ: m[3], name: m[4], location: loc})
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			logs = append(logs, fmt.Sprintf("ERROR: 0:%d: '}' : syntax error", i+1))
			depth = 0
		}
	}
	if depth != 0 {
		logs = append(logs, fmt.Sprintf("ERROR: 0:%d: '' : syntax error: unexpected end of file", len(lines)))
	}
	if !mainRE.MatchString(sh.source) {
		logs = append(logs, "ERROR: 0:1: 'main' : function not defined")
	}
	if len(logs) > 0 {
		sh.log = strings.Join(logs, "\n") + "\n"
		return
	}
	sh.compiled = true
	sh.log = ""
}

func (c *Context) ShaderCompiled(id uint32) bool {
	c.call("ShaderCompiled")
	sh, ok := c.shaders[id]
	return ok && sh.compiled
}

func (c *Context) ShaderInfoLog(id uint32) string {
	c.call("ShaderInfoLog")
	if sh, ok := c.shaders[id]; ok {
		return sh.log
	}
	return ""
}

func (c *Context) DeleteShader(id uint32) {
	c.call("DeleteShader")
	if id == 0 {
		return
	}
	if _, ok := c.shaders[id]; !ok {
		c.fail("DeleteShader: no shader %d", id)
		return
	}
	delete(c.shaders, id)
}

func (c *Context) CreateProgram() uint32 {
	c.call("CreateProgram")
	id := c.name()
	c.programs[id] = &program{}
	return id
}

func (c *Context) AttachShader(prog, sh uint32) {
	c.call("AttachShader")
	p, ok := c.programs[prog]
	if !ok {
		c.fail("AttachShader: no program %d", prog)
		return
	}
	if _, ok := c.shaders[sh]; !ok {
		c.fail("AttachShader: no shader %d", sh)
		return
	}
	p.attached = append(p.attached, sh)
}

func (c *Context) DetachShader(prog, sh uint32) {
	c.call("DetachShader")
	p, ok := c.programs[prog]
	if !ok {
		c.fail("DetachShader: no program %d", prog)
		return
	}
	for i, a := range p.attached {
		if a == sh {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
	c.fail("DetachShader: shader %d not attached to %d", sh, prog)
}

func (c *Context) LinkProgram(prog uint32) {
	c.call("LinkProgram")
	p, ok := c.programs[prog]
	if !ok {
		c.fail("LinkProgram: no program %d", prog)
		return
	}
	p.linked = false
	var vs, fs *shader
	for _, id := range p.attached {
		sh, ok := c.shaders[id]
		switch {
		case !ok || !sh.compiled:
			p.log = "ERROR: Linking with uncompiled/unspecialized shader\n"
			return
		case sh.typ == cube.VertexShaderType && vs == nil:
			vs = sh
		case sh.typ == cube.FragmentShaderType && fs == nil:
			fs = sh
		default:
			p.log = "ERROR: Too many shaders attached for one stage\n"
			return
		}
	}
	if vs == nil || fs == nil {
		p.log = "ERROR: Program needs both a vertex and a fragment shader\n"
		return
	}

	outs := map[string]string{}
	for _, d := range vs.decls {
		if d.qualifier == "out" || d.qualifier == "varying" {
			outs[d.name] = d.typ
		}
	}
	var logs []string
	for _, d := range fs.decls {
		if d.qualifier != "in" && d.qualifier != "varying" {
			continue
		}
		typ, ok := outs[d.name]
		switch {
		case !ok:
			logs = append(logs, fmt.Sprintf("ERROR: Input of fragment shader '%s' not written by vertex shader", d.name))
		case typ != d.typ:
			logs = append(logs, fmt.Sprintf("ERROR: Type mismatch between vertex output '%s' and fragment input", d.name))
		}
	}
	if len(logs) > 0 {
		p.log = strings.Join(logs, "\n") + "\n"
		return
	}

	p.attribs = map[string]int32{}
	used := map[int32]bool{}
	var pending []string
	for _, d := range vs.decls {
		if d.qualifier != "in" && d.qualifier != "attribute" {
			continue
		}
		if d.location >= 0 {
			p.attribs[d.name] = int32(d.location)
			used[int32(d.location)] = true
		} else {
			pending = append(pending, d.name)
		}
	}
	slot := int32(0)
	for _, name := range pending {
		for used[slot] {
			slot++
		}
		p.attribs[name] = slot
		used[slot] = true
	}

	p.uniforms = map[string]int32{}
	p.uniformTypes = map[int32]string{}
	p.values = map[int32][]float32{}
	for _, sh := range []*shader{vs, fs} {
		for _, d := range sh.decls {
			if d.qualifier != "uniform" {
				continue
			}
			if _, ok := p.uniforms[d.name]; ok {
				continue
			}
			loc := int32(len(p.uniforms))
			p.uniforms[d.name] = loc
			p.uniformTypes[loc] = d.typ
		}
	}
	p.linked = true
	p.log = ""
}

func (c *Context) ProgramLinked(prog uint32) bool {
	c.call("ProgramLinked")
	p, ok := c.programs[prog]
	return ok && p.linked
}

func (c *Context) ProgramInfoLog(prog uint32) string {
	c.call("ProgramInfoLog")
	if p, ok := c.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (c *Context) UseProgram(prog uint32) {
	c.call("UseProgram")
	if prog != 0 {
		p, ok := c.programs[prog]
		if !ok || !p.linked {
			c.fail("UseProgram: program %d not linked", prog)
			return
		}
	}
	c.program = prog
}

func (c *Context) DeleteProgram(prog uint32) {
	c.call("DeleteProgram")
	if prog == 0 {
		return
	}
	if _, ok := c.programs[prog]; !ok {
		c.fail("DeleteProgram: no program %d", prog)
		return
	}
	delete(c.programs, prog)
	if c.program == prog {
		c.program = 0
	}
}

func (c *Context) GetAttribLocation(prog uint32, name string) int32 {
	c.call("GetAttribLocation")
	p, ok := c.programs[prog]
	if !ok || !p.linked {
		c.fail("GetAttribLocation: program %d not linked", prog)
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) GetUniformLocation(prog uint32, name string) int32 {
	c.call("GetUniformLocation")
	p, ok := c.programs[prog]
	if !ok || !p.linked {
		c.fail("GetUniformLocation: program %d not linked", prog)
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) setUniform(fn string, loc int32, typ string, v []float32) {
	c.call(fn)
	if loc == -1 {
		return
	}
	p, ok := c.programs[c.program]
	if !ok {
		c.fail("%s: no current program", fn)
		return
	}
	if t, ok := p.uniformTypes[loc]; !ok || t != typ {
		c.fail("%s: location %d is not a %s", fn, loc, typ)
		return
	}
	p.values[loc] = v
}

func (c *Context) Uniform1f(loc int32, v float32) {
	c.setUniform("Uniform1f", loc, "float", []float32{v})
}

func (c *Context) UniformMatrix3fv(loc int32, transpose bool, m *[9]float32) {
	c.setUniform("UniformMatrix3fv", loc, "mat3", transposed(m[:], 3, transpose))
}

func (c *Context) UniformMatrix4fv(loc int32, transpose bool, m *[16]float32) {
	c.setUniform("UniformMatrix4fv", loc, "mat4", transposed(m[:], 4, transpose))
}

func transposed(m []float32, n int, transpose bool) []float32 {
	out := make([]float32, len(m))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if transpose {
				out[i*n+j] = m[j*n+i]
			} else {
				out[i*n+j] = m[i*n+j]
			}
		}
	}
	return out
}

// Uniform returns the column-major value last uploaded to a uniform.
func (c *Context) Uniform(prog uint32, name string) ([]float32, bool) {
	p, ok := c.programs[prog]
	if !ok || !p.linked {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Attribs returns the attribute names of a linked program sorted by slot.
func (c *Context) Attribs(prog uint32) []string {
	p, ok := c.programs[prog]
	if !ok || !p.linked {
		return nil
	}
	names := make([]string, 0, len(p.attribs))
	for n := range p.attribs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return p.attribs[names[i]] < p.attribs[names[j]] })
	return names
}

func (c *Context) CreateBuffer() uint32 {
	c.call("CreateBuffer")
	id := c.name()
	c.buffers[id] = nil
	return id
}

func (c *Context) bound(target cube.Enum) (uint32, bool) {
	switch target {
	case cube.ArrayBuffer:
		return c.arrayBuffer, true
	case cube.ElementArrayBuffer:
		return c.arrays[c.vertexArray].elements, true
	}
	return 0, false
}

func (c *Context) BindBuffer(target cube.Enum, buf uint32) {
	c.call("BindBuffer")
	if _, ok := c.buffers[buf]; buf != 0 && !ok {
		c.fail("BindBuffer: no buffer %d", buf)
		return
	}
	switch target {
	case cube.ArrayBuffer:
		c.arrayBuffer = buf
	case cube.ElementArrayBuffer:
		c.arrays[c.vertexArray].elements = buf
	default:
		c.fail("BindBuffer: invalid target %#x", uint32(target))
	}
}

func (c *Context) BufferData(target cube.Enum, data []byte, usage cube.Enum) {
	c.call("BufferData")
	buf, ok := c.bound(target)
	if !ok || buf == 0 {
		c.fail("BufferData: nothing bound to %#x", uint32(target))
		return
	}
	c.buffers[buf] = append([]byte(nil), data...)
}

func (c *Context) GetBufferSubData(target cube.Enum, offset int, dst []byte) {
	c.call("GetBufferSubData")
	buf, ok := c.bound(target)
	if !ok || buf == 0 {
		c.fail("GetBufferSubData: nothing bound to %#x", uint32(target))
		return
	}
	data := c.buffers[buf]
	if offset < 0 || offset+len(dst) > len(data) {
		c.fail("GetBufferSubData: range %d+%d outside %d bytes", offset, len(dst), len(data))
		return
	}
	copy(dst, data[offset:])
}

func (c *Context) DeleteBuffer(buf uint32) {
	c.call("DeleteBuffer")
	if buf == 0 {
		return
	}
	if _, ok := c.buffers[buf]; !ok {
		c.fail("DeleteBuffer: no buffer %d", buf)
		return
	}
	delete(c.buffers, buf)
	if c.arrayBuffer == buf {
		c.arrayBuffer = 0
	}
	if va := c.arrays[c.vertexArray]; va.elements == buf {
		va.elements = 0
	}
}

// BufferBytes returns the stored contents of a buffer.
func (c *Context) BufferBytes(buf uint32) []byte {
	return append([]byte(nil), c.buffers[buf]...)
}

func (c *Context) CreateVertexArray() uint32 {
	c.call("CreateVertexArray")
	id := c.name()
	c.arrays[id] = newVertexArray()
	return id
}

func (c *Context) BindVertexArray(id uint32) {
	c.call("BindVertexArray")
	if _, ok := c.arrays[id]; !ok {
		c.fail("BindVertexArray: no vertex array %d", id)
		return
	}
	c.vertexArray = id
}

func (c *Context) attrib(index uint32) *attribState {
	va := c.arrays[c.vertexArray]
	a, ok := va.attribs[index]
	if !ok {
		a = &attribState{}
		va.attribs[index] = a
	}
	return a
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.call("EnableVertexAttribArray")
	c.attrib(index).enabled = true
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ cube.Enum, normalized bool, stride int32, offset uintptr) {
	c.call("VertexAttribPointer")
	if c.arrayBuffer == 0 {
		c.fail("VertexAttribPointer: no ARRAY_BUFFER bound")
		return
	}
	if size < 1 || size > 4 {
		c.fail("VertexAttribPointer: invalid size %d", size)
		return
	}
	a := c.attrib(index)
	a.buffer = c.arrayBuffer
	a.size = size
	a.typ = typ
	a.stride = stride
	a.offset = offset
}

func (c *Context) DeleteVertexArray(id uint32) {
	c.call("DeleteVertexArray")
	if id == 0 {
		return
	}
	if _, ok := c.arrays[id]; !ok {
		c.fail("DeleteVertexArray: no vertex array %d", id)
		return
	}
	delete(c.arrays, id)
	if c.vertexArray == id {
		c.vertexArray = 0
	}
}

// FetchAttrib reads the float values attribute slot index yields for a
// vertex through the currently bound vertex array, the way the vertex puller
// would.
func (c *Context) FetchAttrib(index uint32, vertex int) ([]float32, error) {
	a, ok := c.arrays[c.vertexArray].attribs[index]
	if !ok || !a.enabled {
		return nil, fmt.Errorf("attribute %d not enabled in vertex array %d", index, c.vertexArray)
	}
	if a.size == 0 {
		return nil, fmt.Errorf("attribute %d has no pointer in vertex array %d", index, c.vertexArray)
	}
	if a.typ != cube.Float {
		return nil, fmt.Errorf("attribute %d has type %#x, only FLOAT is supported", index, uint32(a.typ))
	}
	data, ok := c.buffers[a.buffer]
	if !ok {
		return nil, fmt.Errorf("attribute %d reads deleted buffer %d", index, a.buffer)
	}
	stride := int(a.stride)
	if stride == 0 {
		stride = int(a.size) * 4
	}
	start := int(a.offset) + vertex*stride
	end := start + int(a.size)*4
	if vertex < 0 || end > len(data) {
		return nil, fmt.Errorf("vertex %d outside buffer %d", vertex, a.buffer)
	}
	out := make([]float32, a.size)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(data[start+4*i:]))
	}
	return out, nil
}

// Elements reads the index buffer bound to the current vertex array.
func (c *Context) Elements() ([]uint16, error) {
	buf := c.arrays[c.vertexArray].elements
	data, ok := c.buffers[buf]
	if buf == 0 || !ok {
		return nil, fmt.Errorf("no index buffer in vertex array %d", c.vertexArray)
	}
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.NativeEndian.Uint16(data[2*i:])
	}
	return out, nil
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.call("ClearColor")
	c.clearColor = [4]float32{r, g, b, a}
}

func (c *Context) Clear(mask cube.Enum) {
	c.call("Clear")
	c.clears = append(c.clears, ClearCall{Mask: mask, Color: c.clearColor})
}

func (c *Context) DrawElements(mode cube.Enum, count int32, typ cube.Enum, offset uintptr) {
	c.call("DrawElements")
	if c.program == 0 {
		c.fail("DrawElements: no program in use")
		return
	}
	elements := c.arrays[c.vertexArray].elements
	if elements == 0 {
		c.fail("DrawElements: no ELEMENT_ARRAY_BUFFER bound")
		return
	}
	c.draws = append(c.draws, DrawCall{
		Mode:        mode,
		Count:       count,
		Type:        typ,
		Offset:      offset,
		Program:     c.program,
		VertexArray: c.vertexArray,
		Elements:    elements,
	})
}
