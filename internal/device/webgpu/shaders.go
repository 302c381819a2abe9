//go:build windows

package webgpu

// WGSL compute shader for the axpy primitive.
// Using a string constant instead of embed for simplicity.

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// axpyShader performs scaled accumulation in place: y = alpha*x + y.
// WGSL has no f64 type, so only the float32 form exists.
const axpyShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        y[idx] = params.alpha * x[idx] + y[idx];
    }
}
`
