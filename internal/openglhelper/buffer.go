// Package openglhelper wraps the OpenGL and GLFW calls the viewer needs
// in a more Go-friendly API. Everything here must run on the thread that
// owns the GL context.
package openglhelper

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// BufferObject represents an OpenGL buffer object (VBO, EBO, etc.)
type BufferObject struct {
	ID    uint32
	Type  uint32 // GL_ARRAY_BUFFER, GL_ELEMENT_ARRAY_BUFFER, etc.
	Size  int    // Size of the buffer in bytes
	Usage uint32 // GL_STATIC_DRAW, GL_DYNAMIC_DRAW, etc.
}

// BufferUsage represents different buffer usage patterns for OpenGL buffers.
type BufferUsage uint32

// StaticDraw indicates buffer contents will be specified once and used many times for drawing
const StaticDraw BufferUsage = gl.STATIC_DRAW

// VertexArrayObject stores vertex attribute configurations
type VertexArrayObject struct {
	ID uint32
}

// NewBufferObject creates a buffer of the given type and fills it with data
func NewBufferObject(bufferType uint32, sizeInBytes int, data unsafe.Pointer, usage BufferUsage) *BufferObject {
	var bufferID uint32
	gl.GenBuffers(1, &bufferID)

	buffer := &BufferObject{
		ID:    bufferID,
		Type:  bufferType,
		Size:  sizeInBytes,
		Usage: uint32(usage),
	}

	buffer.Bind()
	gl.BufferData(bufferType, sizeInBytes, data, uint32(usage))

	return buffer
}

// NewVBO uploads interleaved float vertex data to a static array buffer
func NewVBO(vertices []float32) *BufferObject {
	var data unsafe.Pointer
	if len(vertices) > 0 {
		data = gl.Ptr(vertices)
	}
	return NewBufferObject(gl.ARRAY_BUFFER, len(vertices)*4, data, StaticDraw)
}

// NewEBO uploads 32-bit indices to a static element buffer.
// The owning VAO must be bound first so it records the binding.
func NewEBO(indices []uint32) *BufferObject {
	var data unsafe.Pointer
	if len(indices) > 0 {
		data = gl.Ptr(indices)
	}
	return NewBufferObject(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, data, StaticDraw)
}

// Bind binds the buffer object to its type target.
func (bo *BufferObject) Bind() {
	gl.BindBuffer(bo.Type, bo.ID)
}

// Unbind unbinds the buffer object from its type target.
func (bo *BufferObject) Unbind() {
	gl.BindBuffer(bo.Type, 0)
}

// Delete releases the buffer object
func (bo *BufferObject) Delete() {
	gl.DeleteBuffers(1, &bo.ID)
}

// NewVAO creates a new Vertex Array Object.
func NewVAO() *VertexArrayObject {
	var vaoID uint32
	gl.GenVertexArrays(1, &vaoID)

	return &VertexArrayObject{
		ID: vaoID,
	}
}

// Bind binds the vertex array object.
func (vao *VertexArrayObject) Bind() {
	gl.BindVertexArray(vao.ID)
}

// Unbind unbinds the vertex array object.
func (vao *VertexArrayObject) Unbind() {
	gl.BindVertexArray(0)
}

// Delete releases the vertex array object
func (vao *VertexArrayObject) Delete() {
	gl.DeleteVertexArrays(1, &vao.ID)
}

// SetVertexAttribPointer sets up a vertex attribute pointer and enables the attribute.
func (vao *VertexArrayObject) SetVertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(index)
}
